// Package zoom provides a minimal client for the parts of the Zoom REST API
// the downloader needs: Server-to-Server OAuth token acquisition, the user
// recordings listing endpoint, and authenticated raw downloads.
//
// The package is deliberately not a general-purpose Zoom client. It is built
// around one invariant: every outbound request goes through Invoker.Do, so
// the reactive expired-token recovery (refresh once, retry once, then fail
// with AuthError) is applied in exactly one place for listing calls and file
// downloads alike.
//
// Error taxonomy:
//   - *AuthError: credential rejected even after a refresh. Fatal.
//   - *RequestError: any other HTTP or network failure. The caller decides
//     whether to skip the affected window or file.
//
// Example usage:
//
//	tokens := zoom.NewTokenProvider(accountID, clientID, clientSecret)
//	invoker := zoom.NewInvoker(tokens, logger)
//	catalog := zoom.NewCatalogClient(invoker, logger)
//
//	err := catalog.ForeachRecordingFile(ctx, "me", window, func(f zoom.RecordingFile) error {
//	    // decide, download, record
//	    return nil
//	})
package zoom
