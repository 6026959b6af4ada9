package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/memory"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/mongo"
	"github.com/m-mizutani/gt"
)

func runActivityLogTest(t *testing.T, newLog func(t *testing.T) interfaces.ActivityLog) {
	t.Helper()

	t.Run("List returns newest first", func(t *testing.T) {
		log := newLog(t)
		ctx := context.Background()
		resourceID := model.NewID()
		base := time.Now().UTC().Truncate(time.Millisecond)

		for i, action := range []types.ActivityAction{types.ActivityCreate, types.ActivityUpdate, types.ActivityDelete} {
			gt.NoError(t, log.Record(ctx, &model.Activity{
				Actor:      "alice@example.com",
				Action:     action,
				Kind:       types.KindRisk,
				ResourceID: resourceID,
				Timestamp:  base.Add(time.Duration(i) * time.Second),
			})).Required()
		}

		got, err := log.List(ctx, model.ActivityFilter{ResourceID: resourceID})
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(3)
		gt.Value(t, got[0].Action).Equal(types.ActivityDelete)
		gt.Value(t, got[2].Action).Equal(types.ActivityCreate)
		gt.Value(t, got[0].ID).NotEqual("")
	})

	t.Run("List filters and limits", func(t *testing.T) {
		log := newLog(t)
		ctx := context.Background()
		actor := model.NewID() + "@example.com"

		for i := 0; i < 5; i++ {
			gt.NoError(t, log.Record(ctx, &model.Activity{
				Actor:      actor,
				Action:     types.ActivityCreate,
				Kind:       types.KindIncident,
				ResourceID: model.NewID(),
			})).Required()
		}
		gt.NoError(t, log.Record(ctx, &model.Activity{
			Actor:  actor,
			Action: types.ActivityLogin,
			Kind:   types.KindUser,
		})).Required()

		got, err := log.List(ctx, model.ActivityFilter{Actor: actor, Kind: types.KindIncident, Limit: 3})
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(3)
		for _, a := range got {
			gt.Value(t, a.Kind).Equal(types.KindIncident)
		}

		all, err := log.List(ctx, model.ActivityFilter{Actor: actor})
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(6)
	})
}

func TestMemoryActivityLog(t *testing.T) {
	runActivityLogTest(t, func(t *testing.T) interfaces.ActivityLog {
		return memory.NewActivityLog()
	})
}

func TestMongoActivityLog(t *testing.T) {
	runActivityLogTest(t, func(t *testing.T) interfaces.ActivityLog {
		t.Helper()

		uri := os.Getenv("TEST_MONGODB_URI")
		if uri == "" {
			t.Skip("TEST_MONGODB_URI not set")
		}

		ctx := context.Background()
		log, err := mongo.New(ctx, uri, "grc_test", mongo.WithCollection("activities_"+model.NewID()))
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			gt.NoError(t, log.Close(context.Background()))
		})
		return log
	})
}
