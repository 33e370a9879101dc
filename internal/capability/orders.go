package capability

import (
	"context"
	"sort"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/dataset"
)

// Orders summarizes order records for one doctor or the whole book.
type Orders struct {
	data *dataset.Dataset
}

var _ Capability = (*Orders)(nil)

func NewOrders(data *dataset.Dataset) *Orders { return &Orders{data: data} }

func (o *Orders) Name() string { return "orders.lookup" }

func (o *Orders) Description() string {
	return "Look up order status, value, and history, optionally filtered by doctor name."
}

func (o *Orders) Params() map[string]any { return doctorParam() }

func (o *Orders) Invoke(_ context.Context, args map[string]any) (domain.Payload, error) {
	doctor := stringArg(args, "doctor_name")
	orders := o.data.OrdersFor(doctor)

	summary := domain.OrderSummary{
		Doctor:       doctor,
		TotalOrders:  len(orders),
		StatusCounts: map[string]int{},
	}
	for _, ord := range orders {
		summary.TotalValue += ord.Amount
		summary.StatusCounts[ord.Status]++
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Date > orders[j].Date })
	if len(orders) > 3 {
		orders = orders[:3]
	}
	summary.RecentOrders = orders
	return summary, nil
}
