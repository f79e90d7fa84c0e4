package aggregator

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AinaRoxane/Wallet/internal/models"
)

// DateGroup is one calendar day's worth of notifications, ready for a
// collapsible per-date display.
type DateGroup struct {
	Date  string                `json:"date"`
	Items []models.Notification `json:"items"`
}

// dayKey truncates a notification timestamp to its UTC calendar date.
// Grouping is fixed to UTC so the same document always lands in the same
// group regardless of the viewer's zone.
func dayKey(n models.Notification) string {
	return n.Date.UTC().Format("2006-01-02")
}

// GroupByDate partitions notifications by UTC calendar date. The input
// order is preserved twice over: items inside a group keep their relative
// order, and groups appear in first-occurrence order of their date.
func GroupByDate(notifications []models.Notification) []DateGroup {
	groups := []DateGroup{}
	index := make(map[string]int)

	for _, n := range notifications {
		key := dayKey(n)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Date: key})
		}
		groups[i].Items = append(groups[i].Items, n)
	}

	return groups
}

// Remove drops the notification with the given id from the grouped
// structure. A group emptied by the removal is kept, so group headers
// remain stable while a screen is open.
func Remove(groups []DateGroup, id primitive.ObjectID) []DateGroup {
	for gi := range groups {
		items := groups[gi].Items
		for i, n := range items {
			if n.ID == id {
				groups[gi].Items = append(items[:i], items[i+1:]...)
				return groups
			}
		}
	}
	return groups
}

// Count returns the total number of notifications across all groups.
func Count(groups []DateGroup) int {
	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}
	return total
}
