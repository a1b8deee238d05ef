package lock

import (
	"sync"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// KeyedMutex 依鍵值分配互斥鎖（行程內）
//
// 每個鍵對應一把 sync.Mutex，並以引用計數回收：
// 最後一個持有者釋放後，該鍵的項目即從 map 移除，map 不會無限成長。
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

var _ shared.KeyedLocker = (*KeyedMutex)(nil)

// NewKeyedMutex 創建鍵值鎖
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

// Lock 取得鍵的鎖，回傳的 unlock 只能呼叫一次
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}

// Len 目前持有或等待中的鍵數量
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
