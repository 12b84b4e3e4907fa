package state

import (
	"sync"
)

// Status - состояние коллекции сущности в памяти.
type Status int

const (
	StatusUnloaded Status = iota
	StatusLoading
	StatusLoaded
	StatusLoadFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnloaded:
		return "Unloaded"
	case StatusLoading:
		return "Loading"
	case StatusLoaded:
		return "Loaded"
	case StatusLoadFailed:
		return "LoadFailed"
	}
	return "Unknown"
}

// collection - явный контейнер состояния одной сущности.
// Между перезагрузками это единственная копия данных в памяти;
// после каждой успешной мутации срез заменяется целиком,
// точечные правки допускаются только на время открытой записи.
type collection[T any] struct {
	mu     sync.RWMutex
	items  []T
	status Status
	idOf   func(T) int
}

func newCollection[T any](idOf func(T) int) *collection[T] {
	return &collection[T]{status: StatusUnloaded, idOf: idOf}
}

// get возвращает копию среза и текущий статус.
func (c *collection[T]) get() ([]T, Status) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, c.status
}

func (c *collection[T]) beginLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusLoading
}

// completeLoad заменяет срез целиком. Частичных правок нет.
func (c *collection[T]) completeLoad(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.status = StatusLoaded
}

// failLoad фиксирует неудачу загрузки; прежний срез остается на месте.
func (c *collection[T]) failLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusLoadFailed
}

// stage записывает новую версию строки в память до обращения к БД и
// возвращает снимок прежнего значения для возможного отката.
func (c *collection[T]) stage(record T) (prev T, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(record)
	for i, item := range c.items {
		if c.idOf(item) == id {
			prev = item
			c.items[i] = record
			return prev, true
		}
	}
	return prev, false
}

// restore возвращает строке значение из снимка. Хранилище при этом
// не затрагивается - восстанавливается только копия в памяти.
func (c *collection[T]) restore(snapshot T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(snapshot)
	for i, item := range c.items {
		if c.idOf(item) == id {
			c.items[i] = snapshot
			return
		}
	}
}
