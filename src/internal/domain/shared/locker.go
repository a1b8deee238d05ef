package shared

// KeyedLocker 依鍵值序列化寫入操作
//
// 同一個鍵（例如同一會員的積分帳本）的操作互斥，
// 不同鍵之間完全並行，不存在全域鎖。
//
// 使用範例：
//
//	unlock := locker.Lock("ledger:" + memberID.String())
//	defer unlock()
type KeyedLocker interface {
	Lock(key string) (unlock func())
}
