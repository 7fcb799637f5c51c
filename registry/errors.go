package registry

import "errors"

var ErrUnknownAsset = errors.New("asset is not present in the registry")
