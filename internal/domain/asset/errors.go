package asset

import "errors"

var ErrAssetNotFound = errors.New("Asset not found")
