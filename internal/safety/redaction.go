// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Credential redaction for connection strings written to logs and reports.

package safety

import (
	"net/url"
	"strings"
)

// RedactDSN masks the password of URL-style DSNs and the password= field of
// keyword/value DSNs. Unparseable input is returned with passwords masked.
func RedactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err == nil {
			if u.User != nil {
				if _, hasPwd := u.User.Password(); hasPwd {
					u.User = url.UserPassword(u.User.Username(), "***")
				}
			}
			return u.String()
		}
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if k, _, ok := strings.Cut(f, "="); ok && strings.EqualFold(k, "password") {
			fields[i] = k + "=***"
		}
	}
	return strings.Join(fields, " ")
}
