package interaction

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rushteam/shopkit/core"
)

// lockStripes 是 (user, product) 键锁的分片数。
const lockStripes = 64

// 隐式反馈错误定义（使用统一的 DomainError）
var (
	// ErrInvalidRating 表示评分超出 1-5
	ErrInvalidRating = core.NewDomainError(core.ModuleInteraction, core.ErrorCodeInvalidInput, "interaction: rating must be between 1 and 5")

	// ErrEmptyKey 表示用户或商品 ID 为空
	ErrEmptyKey = core.NewDomainError(core.ModuleInteraction, core.ErrorCodeInvalidInput, "interaction: user id and product id must not be empty")
)

// Store 是基于 core.KeyValueStore 的隐式反馈存储，实现 core.InteractionStore。
//
// 存储布局（Hash，Redis 与内存实现通用）：
//   交互行：  {KeyPrefix}:user:{userID}  field=productID  value=JSON(core.Interaction)
//   用户索引：{KeyPrefix}:users          field=userID     value="1"
//
// 并发：Record* 是读-改-写，按 (user, product) 哈希到分片互斥锁串行化，
// 防止并发浏览计数的丢失更新。锁的作用域是单进程；多实例部署时应将写入
// 收敛到单实例，或换用后端原子 upsert 的实现。
type Store struct {
	kv core.KeyValueStore

	// KeyPrefix 是存储 key 的前缀，默认 "interaction"
	KeyPrefix string

	locks [lockStripes]sync.Mutex
}

// NewStore 创建一个隐式反馈存储。
func NewStore(kv core.KeyValueStore, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = "interaction"
	}
	return &Store{
		kv:        kv,
		KeyPrefix: keyPrefix,
	}
}

func (s *Store) userKey(userID string) string {
	return s.KeyPrefix + ":user:" + userID
}

func (s *Store) usersKey() string {
	return s.KeyPrefix + ":users"
}

func (s *Store) lockFor(userID, productID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	h.Write([]byte{0})
	h.Write([]byte(productID))
	return &s.locks[h.Sum32()%lockStripes]
}

// upsert 对一个 (user, product) 行做串行化的读-改-写。
// 行不存在时惰性创建，创建幂等：并发调用也不会产生重复行（同一 Hash field）。
func (s *Store) upsert(ctx context.Context, userID, productID string, mutate func(*core.Interaction)) error {
	if userID == "" || productID == "" {
		return ErrEmptyKey
	}

	mu := s.lockFor(userID, productID)
	mu.Lock()
	defer mu.Unlock()

	row := &core.Interaction{
		UserID:    userID,
		ProductID: productID,
	}

	data, err := s.kv.HGet(ctx, s.userKey(userID), productID)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, row); err != nil {
			return err
		}
	case core.IsStoreNotFound(err):
		// 首次事件，惰性创建
	default:
		return err
	}

	mutate(row)
	row.UpdatedAt = time.Now()

	out, err := json.Marshal(row)
	if err != nil {
		return err
	}
	if err := s.kv.HSet(ctx, s.userKey(userID), productID, out); err != nil {
		return err
	}
	// 用户索引：ListInteractions 依赖它枚举全部用户
	return s.kv.HSet(ctx, s.usersKey(), userID, []byte("1"))
}

// RecordView 实现 core.InteractionStore：浏览计数 +1。
func (s *Store) RecordView(ctx context.Context, userID, productID string) error {
	return s.upsert(ctx, userID, productID, func(row *core.Interaction) {
		row.ViewCount++
	})
}

// RecordPurchase 实现 core.InteractionStore：purchased 单向置 true。
func (s *Store) RecordPurchase(ctx context.Context, userID, productID string) error {
	return s.upsert(ctx, userID, productID, func(row *core.Interaction) {
		row.Purchased = true
	})
}

// RecordRating 实现 core.InteractionStore：评分后写覆盖。
// 越界评分整单拒绝，不做部分写入。
func (s *Store) RecordRating(ctx context.Context, userID, productID string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return s.upsert(ctx, userID, productID, func(row *core.Interaction) {
		row.Rating = rating
	})
}

// GetUserInteractions 实现 core.InteractionStore。
func (s *Store) GetUserInteractions(ctx context.Context, userID string) (map[string]*core.Interaction, error) {
	if userID == "" {
		return nil, ErrEmptyKey
	}

	fields, err := s.kv.HGetAll(ctx, s.userKey(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return make(map[string]*core.Interaction), nil
		}
		return nil, err
	}

	out := make(map[string]*core.Interaction, len(fields))
	for productID, data := range fields {
		row := &core.Interaction{}
		if err := json.Unmarshal(data, row); err != nil {
			return nil, err
		}
		out[productID] = row
	}
	return out, nil
}

// ListInteractions 实现 core.InteractionStore：返回调用时刻的全量快照。
// 不要求与并发写严格隔离，轻微陈旧的视图对推荐启发式是可接受的。
func (s *Store) ListInteractions(ctx context.Context) ([]*core.Interaction, error) {
	users, err := s.kv.HGetAll(ctx, s.usersKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []*core.Interaction
	for userID := range users {
		rows, err := s.GetUserInteractions(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			out = append(out, row)
		}
	}
	return out, nil
}

// 确保实现 core.InteractionStore 接口
var _ core.InteractionStore = (*Store)(nil)
