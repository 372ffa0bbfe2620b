package errors

// Convenience functions for common error patterns

// Input validation errors

func ClientConfigNotFound(slug, path string) *PitchgenError {
	return New(CategoryConfig, SeverityFatal, "client configuration not found").
		WithContext("client", slug).
		WithContext("path", path)
}

func TemplateNotFound(path string) *PitchgenError {
	return New(CategoryTemplate, SeverityFatal, "template not found").
		WithContext("path", path)
}

func InvalidSlug(slug, reason string) *PitchgenError {
	return New(CategoryValidation, SeverityFatal, "invalid client identifier").
		WithContext("slug", slug).
		WithContext("reason", reason)
}

// Generation errors

func ConfigParseError(path string, cause error) *PitchgenError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "client configuration is not valid").
		WithContext("path", path)
}

func RenderError(cause error) *PitchgenError {
	return Wrap(cause, CategoryRender, SeverityFatal, "page rendering failed")
}

func OutputError(operation string, cause error) *PitchgenError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output write failed").
		WithContext("operation", operation)
}

func AudioCopyError(src string, cause error) *PitchgenError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "audio copy failed").
		WithContext("source", src)
}

// Infrastructure errors

func HistoryError(cause error) *PitchgenError {
	return Wrap(cause, CategoryHistory, SeverityWarning, "history store operation failed")
}

func PublishError(cause error) *PitchgenError {
	return Wrap(cause, CategoryPublish, SeverityFatal, "publish failed")
}

func InternalError(message string, cause error) *PitchgenError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
