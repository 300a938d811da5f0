package services

import (
	apperrors "procurepulse/internal/errors"
)

// ErrDatasetNotLoaded is returned by every dashboard read while the cache is
// empty: before the first load and after a failed reload
var ErrDatasetNotLoaded = apperrors.ErrDatasetNotLoaded
