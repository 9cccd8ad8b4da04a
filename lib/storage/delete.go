package storage

import (
	"net/url"

	"github.com/camly/cli/lib/api"
	"github.com/camly/cli/lib/httpw"
)

// Delete an object from storage.
//
// The server rejects deletes for keys outside the authenticated user's
// namespace, so the file name here is always relative to the caller's own
// prefix.
func Delete(fileName string) error {
	res, err := httpw.Delete(api.BuildURLf("storage/objects?file_name=%s", url.QueryEscape(fileName)))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return nil
}
