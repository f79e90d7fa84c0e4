package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AinaRoxane/Wallet/internal/models"
)

func notif(id primitive.ObjectID, ts string) models.Notification {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return models.Notification{
		ID:    id,
		Email: "a@example.com",
		Date:  t,
	}
}

func TestGroupByDate(t *testing.T) {
	id1 := primitive.NewObjectID()
	id2 := primitive.NewObjectID()
	id3 := primitive.NewObjectID()

	t.Run("partitions by UTC calendar date", func(t *testing.T) {
		input := []models.Notification{
			notif(id1, "2024-03-01T10:00:00Z"),
			notif(id2, "2024-03-01T23:00:00Z"),
			notif(id3, "2024-03-02T01:00:00Z"),
		}

		groups := GroupByDate(input)

		require.Len(t, groups, 2)
		assert.Equal(t, "2024-03-01", groups[0].Date)
		require.Len(t, groups[0].Items, 2)
		assert.Equal(t, id1, groups[0].Items[0].ID)
		assert.Equal(t, id2, groups[0].Items[1].ID)
		assert.Equal(t, "2024-03-02", groups[1].Date)
		require.Len(t, groups[1].Items, 1)
		assert.Equal(t, id3, groups[1].Items[0].ID)
	})

	t.Run("groups follow first-occurrence order, not chronology", func(t *testing.T) {
		input := []models.Notification{
			notif(id1, "2024-03-02T01:00:00Z"),
			notif(id2, "2024-03-01T10:00:00Z"),
			notif(id3, "2024-03-02T09:00:00Z"),
		}

		groups := GroupByDate(input)

		require.Len(t, groups, 2)
		assert.Equal(t, "2024-03-02", groups[0].Date)
		assert.Equal(t, "2024-03-01", groups[1].Date)
		require.Len(t, groups[0].Items, 2)
		assert.Equal(t, id1, groups[0].Items[0].ID)
		assert.Equal(t, id3, groups[0].Items[1].ID)
	})

	t.Run("every notification appears in exactly one group", func(t *testing.T) {
		input := []models.Notification{
			notif(id1, "2024-03-01T10:00:00Z"),
			notif(id2, "2024-03-01T23:00:00Z"),
			notif(id3, "2024-03-02T01:00:00Z"),
		}

		groups := GroupByDate(input)

		seen := make(map[primitive.ObjectID]int)
		for _, g := range groups {
			for _, n := range g.Items {
				seen[n.ID]++
			}
		}
		assert.Len(t, seen, 3)
		for id, count := range seen {
			assert.Equalf(t, 1, count, "notification %s appears %d times", id.Hex(), count)
		}
		assert.Equal(t, len(input), Count(groups))
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		assert.Empty(t, GroupByDate(nil))
	})
}

func TestRemove(t *testing.T) {
	id1 := primitive.NewObjectID()
	id2 := primitive.NewObjectID()
	id3 := primitive.NewObjectID()

	build := func() []DateGroup {
		return GroupByDate([]models.Notification{
			notif(id1, "2024-03-01T10:00:00Z"),
			notif(id2, "2024-03-01T23:00:00Z"),
			notif(id3, "2024-03-02T01:00:00Z"),
		})
	}

	t.Run("removes only the targeted notification", func(t *testing.T) {
		groups := Remove(build(), id2)

		require.Len(t, groups, 2)
		require.Len(t, groups[0].Items, 1)
		assert.Equal(t, id1, groups[0].Items[0].ID)
		require.Len(t, groups[1].Items, 1)
		assert.Equal(t, id3, groups[1].Items[0].ID)
	})

	t.Run("an emptied group is kept", func(t *testing.T) {
		groups := Remove(build(), id3)

		require.Len(t, groups, 2)
		assert.Equal(t, "2024-03-02", groups[1].Date)
		assert.Empty(t, groups[1].Items)
	})

	t.Run("unknown id leaves groups untouched", func(t *testing.T) {
		groups := Remove(build(), primitive.NewObjectID())
		assert.Equal(t, 3, Count(groups))
	})
}
