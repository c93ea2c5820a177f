package service

import (
	"FeedSeeder/internal/api/config"
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/llm"
	"context"
	"fmt"
	log "log/slog"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultEngagementMinDelay = 60 * time.Second
	DefaultEngagementMaxDelay = 20 * 24 * time.Hour
)

// SeedStore 生成流程的提交端，每个阶段结束时批量写入一次
type SeedStore interface {
	InsertUsers(ctx context.Context, users []*model.User) ([]primitive.ObjectID, error)
	InsertTopics(ctx context.Context, topics []*model.Topic) ([]primitive.ObjectID, error)
	InsertFriendships(ctx context.Context, friendships []*model.Friendship) error
	InsertPosts(ctx context.Context, posts []*model.Post) ([]primitive.ObjectID, error)
	InsertComments(ctx context.Context, comments []*model.Comment) error
	InsertLikes(ctx context.Context, likes []*model.Like) error
	SetPostCounts(ctx context.Context, field string, counts []model.PostCounter) error
	Clear(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
}

// ContentGenerator 文本生成端，失败时返回降级文本，只有不可恢复的错误才返回 error
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int, temperature float64) (string, error)
}

// SeedOptions 一次生成的规模参数
type SeedOptions struct {
	NumUsers           int
	NumPosts           int
	MaxFriendsPerUser  int
	MaxCommentsPerPost int
	MaxLikesPerPost    int
	HistoryDays        int
	EngagementMinDelay time.Duration
	EngagementMaxDelay time.Duration
	Temperature        float64
	Topics             []string
	Seed               int64
	Clear              bool
}

// SeedOptionsFromConfig 从配置构建生成参数
func SeedOptionsFromConfig(seedCfg config.SeedConfig, llmCfg config.LLMConfig) SeedOptions {
	return SeedOptions{
		NumUsers:           seedCfg.NumUsers,
		NumPosts:           seedCfg.NumPosts,
		MaxFriendsPerUser:  seedCfg.MaxFriendsPerUser,
		MaxCommentsPerPost: seedCfg.MaxCommentsPerPost,
		MaxLikesPerPost:    seedCfg.MaxLikesPerPost,
		HistoryDays:        seedCfg.HistoryDays,
		EngagementMinDelay: DefaultEngagementMinDelay,
		EngagementMaxDelay: DefaultEngagementMaxDelay,
		Temperature:        llmCfg.Temperature,
		Topics:             seedCfg.Topics,
		Seed:               seedCfg.Seed,
		Clear:              seedCfg.Clear,
	}
}

func (o SeedOptions) withDefaults() SeedOptions {
	if o.EngagementMinDelay <= 0 {
		o.EngagementMinDelay = DefaultEngagementMinDelay
	}
	if o.EngagementMaxDelay < o.EngagementMinDelay {
		o.EngagementMaxDelay = DefaultEngagementMaxDelay
	}
	if o.HistoryDays < 0 {
		o.HistoryDays = 0
	}
	if len(o.Topics) == 0 {
		o.Topics = config.DefaultTopics
	}
	return o
}

// SeedReport 一次运行的结果统计
type SeedReport struct {
	Users       int `json:"users"`
	Topics      int `json:"topics"`
	Friendships int `json:"friendships"`
	Posts       int `json:"posts"`
	Comments    int `json:"comments"`
	Likes       int `json:"likes"`
	Calls       int `json:"generationCalls"`
	Degraded    int `json:"degraded"`
}

// statsReporter 可选能力，llm.Client 实现
type statsReporter interface {
	Stats() llm.Stats
}

// SeedService 五个有序阶段，每个阶段只依赖之前阶段的输出
type SeedService interface {
	GenerateUsers(ctx context.Context, opts SeedOptions) ([]*model.User, error)
	GenerateTopics(ctx context.Context, opts SeedOptions) (map[string]primitive.ObjectID, error)
	GenerateFriendships(ctx context.Context, opts SeedOptions, users []*model.User) ([]*model.Friendship, error)
	GeneratePosts(ctx context.Context, opts SeedOptions, users []*model.User, topics map[string]primitive.ObjectID) ([]model.PostProjection, error)
	GenerateComments(ctx context.Context, opts SeedOptions, users []*model.User, posts []model.PostProjection) ([]*model.Comment, error)
	GenerateLikes(ctx context.Context, opts SeedOptions, users []*model.User, posts []model.PostProjection) ([]*model.Like, error)
	Run(ctx context.Context, opts SeedOptions) (*SeedReport, error)
}

type SeedServiceImpl struct {
	store SeedStore
	gen   ContentGenerator
	now   func() time.Time
	rng   *rand.Rand
	faker *gofakeit.Faker
}

func NewSeedService(store SeedStore, gen ContentGenerator) *SeedServiceImpl {
	return NewSeedServiceWithClock(store, gen, time.Now)
}

// NewSeedServiceWithClock 注入时钟，相同种子与时钟下输出完全一致
func NewSeedServiceWithClock(store SeedStore, gen ContentGenerator, now func() time.Time) *SeedServiceImpl {
	return &SeedServiceImpl{
		store: store,
		gen:   gen,
		now:   now,
	}
}

// reseed 每次 Run 重新播种；Seed 为 0 时使用时钟作为种子
func (s *SeedServiceImpl) reseed(opts SeedOptions) {
	seed := opts.Seed
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	s.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	s.faker = gofakeit.New(seed)
}

func (s *SeedServiceImpl) ensureRand(opts SeedOptions) {
	if s.rng == nil {
		s.reseed(opts)
	}
}

// Run 依次执行全部阶段；上游为空时下游阶段跳过，已提交的阶段不回滚
func (s *SeedServiceImpl) Run(ctx context.Context, opts SeedOptions) (*SeedReport, error) {
	opts = opts.withDefaults()
	s.reseed(opts)
	report := &SeedReport{}
	defer s.collectStats(report)()

	if opts.Clear {
		if err := s.store.Clear(ctx); err != nil {
			return report, fmt.Errorf("clear collections: %w", err)
		}
	}
	if err := s.store.EnsureIndexes(ctx); err != nil {
		return report, fmt.Errorf("ensure indexes: %w", err)
	}

	users, err := s.GenerateUsers(ctx, opts)
	if err != nil {
		return report, fmt.Errorf("identity stage: %w", err)
	}
	report.Users = len(users)

	topics, err := s.GenerateTopics(ctx, opts)
	if err != nil {
		return report, fmt.Errorf("identity stage: %w", err)
	}
	report.Topics = len(topics)

	friendships, err := s.GenerateFriendships(ctx, opts, users)
	if err != nil {
		return report, fmt.Errorf("graph stage: %w", err)
	}
	report.Friendships = len(friendships)

	posts, err := s.GeneratePosts(ctx, opts, users, topics)
	report.Posts = len(posts)
	if err != nil {
		if isSkip(err) {
			log.WarnContext(ctx, "content stage skipped, engagement stages skipped as well", "reason", err.Error())
			return report, nil
		}
		return report, fmt.Errorf("content stage: %w", err)
	}

	comments, err := s.GenerateComments(ctx, opts, users, posts)
	report.Comments = len(comments)
	if err != nil && !isSkip(err) {
		return report, fmt.Errorf("comment stage: %w", err)
	}

	likes, err := s.GenerateLikes(ctx, opts, users, posts)
	report.Likes = len(likes)
	if err != nil && !isSkip(err) {
		return report, fmt.Errorf("like stage: %w", err)
	}

	log.InfoContext(ctx, "seed run finished",
		"users", report.Users,
		"topics", report.Topics,
		"friendships", report.Friendships,
		"posts", report.Posts,
		"comments", report.Comments,
		"likes", report.Likes,
	)
	return report, nil
}

// collectStats 记录本次运行前的调用统计，返回的函数把差值写入 report
func (s *SeedServiceImpl) collectStats(report *SeedReport) func() {
	sr, ok := s.gen.(statsReporter)
	if !ok {
		return func() {}
	}
	before := sr.Stats()
	return func() {
		after := sr.Stats()
		report.Calls = after.Calls - before.Calls
		report.Degraded = after.Degraded - before.Degraded
	}
}

func isSkip(err error) bool {
	return errorsIsAny(err, ErrNoUsers, ErrNoTopics, ErrNoPosts)
}

// historicalTime now 减去 [0, days] 内随机的整天数
func (s *SeedServiceImpl) historicalTime(days int) time.Time {
	now := s.now()
	if days <= 0 {
		return now
	}
	return now.AddDate(0, 0, -s.rng.IntN(days+1))
}

// engagementTime 在 (created, created+max] 内取随机时间，粒度为秒
func (s *SeedServiceImpl) engagementTime(created time.Time, opts SeedOptions) time.Time {
	lo := int64(opts.EngagementMinDelay / time.Second)
	hi := int64(opts.EngagementMaxDelay / time.Second)
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return created.Add(time.Duration(lo+s.rng.Int64N(hi-lo+1)) * time.Second)
}

// sample 从候选中无放回地均匀抽取 k 个
func sample[T any](rng *rand.Rand, candidates []T, k int) []T {
	if k > len(candidates) {
		k = len(candidates)
	}
	pool := make([]T, len(candidates))
	copy(pool, candidates)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// othersThan 除 self 之外的全部用户 ID
func othersThan(users []*model.User, self primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		if u.ID != self {
			out = append(out, u.ID)
		}
	}
	return out
}
