package entity

import (
	"errors"
	"math"
	"time"
)

// ErrTotalOutOfRange is returned for non-positive lines or totals that do not fit in an int64.
var ErrTotalOutOfRange = errors.New("order total out of range")

// OrderItem is one cart line. Prices are whole złoty.
type OrderItem struct {
	Name     string
	Size     string
	Quantity int
	Price    int64
}

func (i OrderItem) LineTotal() int64 {
	return int64(i.Quantity) * i.Price
}

// Order only lives long enough to be rendered into the notification email.
type Order struct {
	Number   string
	Customer *User
	Items    []OrderItem
	Total    int64
	PlacedAt time.Time
}

// ComputeTotal sums all line totals. Non-positive quantities or prices and
// any product or sum that would wrap yield ErrTotalOutOfRange.
func ComputeTotal(items []OrderItem) (int64, error) {
	var total int64
	for _, item := range items {
		if item.Quantity <= 0 || item.Price <= 0 {
			return 0, ErrTotalOutOfRange
		}
		if item.Price > math.MaxInt64/int64(item.Quantity) {
			return 0, ErrTotalOutOfRange
		}
		line := item.LineTotal()
		if total > math.MaxInt64-line {
			return 0, ErrTotalOutOfRange
		}
		total += line
	}
	return total, nil
}

func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
