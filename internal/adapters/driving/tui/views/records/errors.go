package records

import "errors"

// ErrNoRecordService indicates the records view was built without a record service.
var ErrNoRecordService = errors.New("record service not available")
