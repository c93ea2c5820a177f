package service

import (
	"FeedSeeder/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore 内存实现的 SeedStore，ID 按插入顺序确定性生成
type memoryStore struct {
	mu          sync.Mutex
	seq         uint32
	users       []*model.User
	topics      []*model.Topic
	friendships []*model.Friendship
	posts       []*model.Post
	comments    []*model.Comment
	likes       []*model.Like
	countWrites map[string]int
	cleared     bool
	indexed     bool
	failOn      string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{countWrites: map[string]int{}}
}

func (m *memoryStore) nextID() primitive.ObjectID {
	m.seq++
	var id primitive.ObjectID
	copy(id[8:], []byte{byte(m.seq >> 24), byte(m.seq >> 16), byte(m.seq >> 8), byte(m.seq)})
	return id
}

func (m *memoryStore) fail(op string) error {
	if m.failOn == op {
		return fmt.Errorf("%s: injected failure", op)
	}
	return nil
}

func (m *memoryStore) InsertUsers(_ context.Context, users []*model.User) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("users"); err != nil {
		return nil, err
	}
	if m.indexed {
		taken := make(map[string]struct{}, len(m.users))
		for _, u := range m.users {
			taken[u.UserIDStr] = struct{}{}
		}
		for _, u := range users {
			if _, ok := taken[u.UserIDStr]; ok {
				return nil, fmt.Errorf("users: duplicate key user_id_str %q", u.UserIDStr)
			}
			taken[u.UserIDStr] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		c := *u
		c.ID = m.nextID()
		m.users = append(m.users, &c)
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (m *memoryStore) InsertTopics(_ context.Context, topics []*model.Topic) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexed {
		taken := make(map[string]struct{}, len(m.topics))
		for _, t := range m.topics {
			taken[t.Name] = struct{}{}
		}
		for _, t := range topics {
			if _, ok := taken[t.Name]; ok {
				return nil, fmt.Errorf("topics: duplicate key name %q", t.Name)
			}
			taken[t.Name] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(topics))
	for _, t := range topics {
		c := *t
		c.ID = m.nextID()
		m.topics = append(m.topics, &c)
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (m *memoryStore) InsertFriendships(_ context.Context, friendships []*model.Friendship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range friendships {
		c := *f
		c.ID = m.nextID()
		m.friendships = append(m.friendships, &c)
	}
	return nil
}

func (m *memoryStore) InsertPosts(_ context.Context, posts []*model.Post) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		c := *p
		c.ID = m.nextID()
		m.posts = append(m.posts, &c)
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (m *memoryStore) InsertComments(_ context.Context, comments []*model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cm := range comments {
		c := *cm
		c.ID = m.nextID()
		m.comments = append(m.comments, &c)
	}
	return nil
}

func (m *memoryStore) InsertLikes(_ context.Context, likes []*model.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range likes {
		c := *l
		c.ID = m.nextID()
		m.likes = append(m.likes, &c)
	}
	return nil
}

func (m *memoryStore) SetPostCounts(_ context.Context, field string, counts []model.PostCounter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byID := make(map[primitive.ObjectID]*model.Post, len(m.posts))
	for _, p := range m.posts {
		byID[p.ID] = p
	}
	for _, c := range counts {
		p, ok := byID[c.PostID]
		if !ok {
			return errors.New("unknown post " + c.PostID.Hex())
		}
		switch field {
		case model.PostLikesCountField:
			p.LikesCount = c.Count
		case model.PostCommentsCountField:
			p.CommentsCount = c.Count
		default:
			return errors.New("unknown field " + field)
		}
		m.countWrites[field+":"+c.PostID.Hex()]++
	}
	return nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users, m.topics, m.friendships = nil, nil, nil
	m.posts, m.comments, m.likes = nil, nil, nil
	m.cleared = true
	return nil
}

// EnsureIndexes 之后的插入按 user_id_str 与话题名校验唯一
func (m *memoryStore) EnsureIndexes(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("indexes"); err != nil {
		return err
	}
	m.indexed = true
	return nil
}

// stubGenerator 返回由提示词决定的文本
type stubGenerator struct {
	mu    sync.Mutex
	calls int
	reply func(prompt string) (string, error)
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, maxOutputTokens int, _ float64) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.reply != nil {
		return g.reply(prompt)
	}
	return fmt.Sprintf("[%d] %s", maxOutputTokens, strings.ToUpper(prompt[:20])), nil
}
