package dataprovider

import apperrors "github.com/kbukum/fetchkit/errors"

// ErrMissingID matches errors for bulk results holding a record without an id.
var ErrMissingID = apperrors.MissingField("id")

// extractIDs returns the id of every record.
func extractIDs(rows []Record) ([]any, error) {
	ids := make([]any, len(rows))
	for i, r := range rows {
		id, ok := r["id"]
		if !ok {
			return nil, apperrors.MissingField("id").WithDetail("index", i)
		}
		ids[i] = id
	}
	return ids, nil
}
