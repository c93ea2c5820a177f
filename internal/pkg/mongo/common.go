package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// insertMany 批量插入并按输入顺序返回生成的 ObjectID
func insertMany[T any](ctx context.Context, col *mongo.Collection, docs []*T) ([]primitive.ObjectID, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	payload := make([]interface{}, len(docs))
	for i, d := range docs {
		payload[i] = d
	}

	res, err := col.InsertMany(ctx, payload)
	if err != nil {
		return nil, errors.Wrapf(err, "insert many into %s", col.Name())
	}

	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		oid, ok := id.(primitive.ObjectID)
		if !ok {
			return nil, errors.Errorf("unexpected _id type %T in %s", id, col.Name())
		}
		ids = append(ids, oid)
	}
	return ids, nil
}

// findAll 执行查询并解码全部结果
func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}) ([]*T, error) {
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "find in %s", col.Name())
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*T, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, errors.Wrapf(err, "decode %s", col.Name())
	}
	return list, nil
}

// aggregateAll 执行聚合管道并解码全部结果
func aggregateAll[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]*T, error) {
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrapf(err, "aggregate %s", col.Name())
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*T, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, errors.Wrapf(err, "decode %s aggregate", col.Name())
	}
	return list, nil
}

// ensureUniqueIndex 创建唯一索引，同名同定义的索引已存在时服务端直接返回
func ensureUniqueIndex(ctx context.Context, col *mongo.Collection, keys bson.D) error {
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrapf(err, "create unique index on %s", col.Name())
	}
	return nil
}

// clearCollection 删除集合内全部文档
func clearCollection(ctx context.Context, col *mongo.Collection) (int64, error) {
	res, err := col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrapf(err, "clear %s", col.Name())
	}
	return res.DeletedCount, nil
}
