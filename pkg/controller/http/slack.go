package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/errutil"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

const (
	slackTimestampHeader = "X-Slack-Request-Timestamp"
	slackSignatureHeader = "X-Slack-Signature"

	// Interaction payloads are small form posts.
	maxSlackBodySize = 1 << 20
)

// verifySlackSignature checks the v0 signature Slack puts on a request.
// Requests signed more than five minutes ago are rejected.
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	header := http.Header{}
	header.Set(slackTimestampHeader, timestamp)
	header.Set(slackSignatureHeader, signature)

	sv, err := slack.NewSecretsVerifier(header, signingSecret)
	if err != nil {
		return goerr.Wrap(err, "invalid slack signature headers", goerr.V("timestamp", timestamp))
	}
	if _, err := sv.Write(body); err != nil {
		return goerr.Wrap(err, "failed to hash slack request body")
	}
	if err := sv.Ensure(); err != nil {
		return goerr.Wrap(err, "slack signature mismatch")
	}
	return nil
}

// SlackSignatureMiddleware rejects requests that were not signed with
// signingSecret. The body is buffered and handed on unchanged.
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(io.LimitReader(r.Body, maxSlackBodySize))
			safe.Close(ctx, r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read slack request body"), http.StatusBadRequest)
				return
			}

			err = verifySlackSignature(signingSecret,
				r.Header.Get(slackTimestampHeader), r.Header.Get(slackSignatureHeader), body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, err, http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
