// Package logger builds *slog.Logger instances with functional options,
// helper attribute constructors, context value injection and log redaction.
//
// New selects a text or JSON handler, installs an optional ReplaceAttr that
// masks sensitive data, and wraps the result with LogHandlerDecorator, which
// runs the registered ContextExtractor callbacks on every record.
//
// # Redaction
//
// WithRedaction masks the value of any attribute whose key or enclosing group
// contains a sensitive substring (email, phone, address, name, ssn, card by
// default). Maps, slices and structs passed with slog.Any are masked
// recursively through the logmask package. WithPIIRedaction additionally
// rewrites email addresses, phone numbers and other PII found in string values
// and in the message. WithProduction enables both.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.ServiceName),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithRedaction(),
//	)
//	log.Warn("payload rejected",
//	    logger.Category(allowlist.Campaign),
//	    logger.Reason(res.Reason),
//	    logger.AuditID(id),
//	)
//
// Helpers such as Error and Reason return an empty Attr for nil or empty
// input, which slog drops, so no extra checks are needed at the call site.
package logger
