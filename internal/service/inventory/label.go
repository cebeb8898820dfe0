package inventory

import (
	"fmt"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// allocateLabel picks the lowest label number in the slot's range not held by
// a live bundle. Removed bundles free their numbers, so released numbers are
// reissued lowest-first. Returns domain.ErrRangeExhausted when every number
// in the range is taken; allocation never succeeds outside the range.
func allocateLabel(slot *domain.Slot, used []int) (int, error) {
	taken := make(map[int]struct{}, len(used))
	for _, n := range used {
		taken[n] = struct{}{}
	}

	for n := slot.LabelRangeStart; n <= slot.LabelRangeEnd; n++ {
		if _, ok := taken[n]; !ok {
			return n, nil
		}
	}

	return 0, fmt.Errorf("slot %s range [%d,%d]: %w",
		slot.ID, slot.LabelRangeStart, slot.LabelRangeEnd, domain.ErrRangeExhausted)
}
