package planner

import (
	"fmt"
	"sync"
)

// PlatformOrders is the finished order list of one platform.
type PlatformOrders struct {
	Index        int
	Name         string
	OrderHorizon int
	Orders       []Order
}

type platformLog struct {
	PlatformOrders
	sealed bool
}

// Ledger records the orders issued per platform. Platforms are opened in
// increasing index order; an open platform accepts orders until it is
// sealed. Only sealed platforms are visible to Quantity, so a platform never
// sees its own in-progress orders.
type Ledger struct {
	mu        sync.RWMutex
	platforms []*platformLog
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Open starts the platform p. p.Index must equal the number of platforms
// opened so far and the previous platform must be sealed.
func (l *Ledger) Open(p Platform) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.Index != len(l.platforms) {
		return fmt.Errorf("%w: got %s, next is %s", ErrPlatformOrder, p.Name(), PlatformName(len(l.platforms)))
	}
	if n := len(l.platforms); n > 0 && !l.platforms[n-1].sealed {
		return fmt.Errorf("%w: %s is still open", ErrPlatformOrder, l.platforms[n-1].Name)
	}
	l.platforms = append(l.platforms, &platformLog{PlatformOrders: PlatformOrders{
		Index:        p.Index,
		Name:         p.Name(),
		OrderHorizon: p.OrderHorizon,
	}})
	return nil
}

// Append adds an order to the open platform at index.
func (l *Ledger) Append(index int, o Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.platforms) {
		return fmt.Errorf("%w: %s was never opened", ErrPlatformOrder, PlatformName(index))
	}
	pl := l.platforms[index]
	if pl.sealed {
		return fmt.Errorf("%w: %s", ErrLedgerSealed, pl.Name)
	}
	pl.Orders = append(pl.Orders, o)
	return nil
}

// Seal finishes the platform at index.
func (l *Ledger) Seal(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.platforms) {
		return fmt.Errorf("%w: %s was never opened", ErrPlatformOrder, PlatformName(index))
	}
	l.platforms[index].sealed = true
	return nil
}

// Quantity returns the quantity of the first order for product on the
// sealed platform at index, or 0 when there is none.
func (l *Ledger) Quantity(index int, product string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.platforms) || !l.platforms[index].sealed {
		return 0
	}
	for _, o := range l.platforms[index].Orders {
		if o.ProductCode == product {
			return o.Quantity
		}
	}
	return 0
}

// Platforms returns a copy of every platform, in order.
func (l *Ledger) Platforms() []PlatformOrders {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]PlatformOrders, len(l.platforms))
	for i, pl := range l.platforms {
		out[i] = pl.PlatformOrders
		out[i].Orders = append([]Order(nil), pl.Orders...)
	}
	return out
}

// Len returns the number of opened platforms.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.platforms)
}
