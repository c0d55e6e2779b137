// Package privacykit sanitizes untrusted content and structured payloads
// before they are shown back to a user or sent to an external AI service.
//
// The work is done by focused packages under pkg/:
//
//   - sanitizer: structural HTML sanitizer and the plain-text content pipeline
//   - pii: typed PII redaction and detection
//   - injection: prompt-injection phrase neutralization
//   - textnorm: HTML/Markdown to text, whitespace and token budget helpers
//   - allowlist: per-category field allowlists with fail-closed validation
//   - logmask: masking of sensitive keys for diagnostic logs
//
// Gateway ties them to one Config and writes audit logs that never contain
// content or payload values.
//
// Basic Usage:
//
//	cfg, err := privacykit.LoadConfig()
//	if err != nil {
//		return err
//	}
//	gw, err := privacykit.New(cfg)
//	if err != nil {
//		return err
//	}
//
//	bio := gw.SanitizeContent(ctx, req.Bio)
//
//	res, err := gw.ValidateAny(ctx, allowlist.Campaign, aiRequest)
//	if err != nil {
//		return err
//	}
//	if !res.Safe {
//		// do not call the AI service
//		return fmt.Errorf("ai request rejected: %s", res.Reason)
//	}
//	send(res.Payload)
//
// Validation fails closed. A payload that still carries PII after filtering
// is rejected whole, never redacted in place.
package privacykit
