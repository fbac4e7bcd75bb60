package commands

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

var ErrZoneNameIsTaken = errors.New("zone name is already taken")

type idChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type missingIDsFinder interface {
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// requireLive fails with a ValidationError naming id unless it resolves to a live row.
func requireLive(ctx context.Context, repo idChecker, param string, id int64) error {
	exists, err := repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewValidationError(param, id)
	}
	return nil
}

// requireAllLive fails with a ValidationError carrying exactly the ids that do not resolve.
func requireAllLive(ctx context.Context, repo missingIDsFinder, param string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	missing, err := repo.MissingIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errs.NewValidationError(param, missing...)
	}
	return nil
}

// allocatedQuantities sums the live entries of a delivery, skipping excludeID.
func allocatedQuantities(ctx context.Context, repo ports.EntryRepository, deliveryID, excludeID int64) (kernel.Quantities, error) {
	entries, err := repo.Find(ctx, ports.EntryFilter{DeliveryID: &deliveryID})
	if err != nil {
		return kernel.Quantities{}, err
	}
	total := kernel.Quantities{}
	for _, e := range entries {
		if e.ID() == excludeID {
			continue
		}
		total = total.Add(e.Quantities())
	}
	return total, nil
}

// cascadeDeleteEntries soft-deletes every live entry of a delivery.
func cascadeDeleteEntries(ctx context.Context, repo ports.EntryRepository, deliveryID int64, actorID string) (int, error) {
	entries, err := repo.Find(ctx, ports.EntryFilter{DeliveryID: &deliveryID})
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := repo.SoftDelete(ctx, e, actorID); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

// unfinished selects entries that still hold their delivery open.
var unfinished = entry.StatusFilter{entry.Waiting, entry.Processing}
