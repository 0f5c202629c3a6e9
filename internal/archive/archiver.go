package archive

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Weesdome/Boardhub/internal/models"
)

const snapshotExt = ".json.zst"

// Archiver writes and reads board snapshots through a Provider.
type Archiver struct {
	provider Provider
	now      func() time.Time
}

// New creates an Archiver over p.
func New(p Provider) *Archiver {
	return &Archiver{provider: p, now: time.Now}
}

func boardPrefix(userID, boardID string) string {
	return fmt.Sprintf("boards/%s/%s/", userID, boardID)
}

// Snapshot stores b under boards/<user>/<board>/<timestamp>-<reason>.json.zst
// and returns the key.
func (a *Archiver) Snapshot(ctx context.Context, b *models.Board, reason string) (string, error) {
	data, err := Encode(b)
	if err != nil {
		return "", err
	}
	key := boardPrefix(b.UserID, b.ID) + a.now().UTC().Format("20060102T150405.000000000Z") + "-" + reason + snapshotExt
	if err := a.provider.Write(ctx, key, data); err != nil {
		return "", err
	}
	slog.Info("board archived",
		slog.String("board_id", b.ID),
		slog.String("key", key),
		slog.Int("bytes", len(data)),
	)
	return key, nil
}

// Snapshots lists a board's snapshots, oldest first.
func (a *Archiver) Snapshots(ctx context.Context, userID, boardID string) ([]Object, error) {
	objs, err := a.provider.List(ctx, boardPrefix(userID, boardID))
	if err != nil {
		return nil, err
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].Key < objs[j].Key })
	return objs, nil
}

// Load reads and decodes the snapshot at key.
func (a *Archiver) Load(ctx context.Context, key string) (*models.Board, error) {
	data, err := a.provider.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
