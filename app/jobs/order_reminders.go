package jobs

import (
	"context"
	"fmt"
	"time"
)

// ReminderWindow is how far back order reminders look.
const ReminderWindow = 7 * 24 * time.Hour

const recentOrdersQuery = `query RecentOrders($since: DateTime!) {
	allOrders(filter: {orderDateGte: $since}, orderBy: [ORDER_DATE]) {
		edges { node { id customer { email } } }
	}
}`

// orderReminders logs every order placed within ReminderWindow.
func (e *Env) orderReminders(ctx context.Context) error {
	log, err := e.open(e.Logs.OrderReminders, true)
	if err != nil {
		return err
	}
	defer log.Close()

	since := e.now().Add(-ReminderWindow).UTC().Format(time.RFC3339)

	var out struct {
		AllOrders struct {
			Edges []struct {
				Node struct {
					ID       string
					Customer struct{ Email string }
				}
			}
		}
	}
	if err := e.Client.Do(ctx, recentOrdersQuery, map[string]interface{}{"since": since}, &out); err != nil {
		log.Error("Error processing order reminders: " + err.Error())
		fmt.Fprintf(e.out(), "Error occurred: %v\n", err)
		return err
	}

	for _, edge := range out.AllOrders.Edges {
		log.Info(fmt.Sprintf("Order ID: %s, Customer Email: %s", edge.Node.ID, edge.Node.Customer.Email))
	}
	fmt.Fprintln(e.out(), "Order reminders processed!")
	return nil
}
