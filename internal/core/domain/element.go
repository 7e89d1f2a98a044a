package domain

// LoadState is the lifecycle of a rendered img element.
type LoadState string

const (
	// LoadPending means the element has not finished loading.
	LoadPending LoadState = "pending"
	// LoadLoaded means a generated or plain source loaded successfully.
	LoadLoaded LoadState = "loaded"
	// LoadFailed means the chosen source failed and the fallback was substituted.
	LoadFailed LoadState = "failed"
	// LoadFallbackLoaded means the original image loaded after a failure.
	LoadFallbackLoaded LoadState = "fallback-loaded"
	// LoadBroken means the fallback failed too. The handler does not fire again.
	LoadBroken LoadState = "broken"
)

// IsTerminal reports whether no further transition can happen.
func (s LoadState) IsTerminal() bool {
	switch s {
	case LoadLoaded, LoadFallbackLoaded, LoadBroken:
		return true
	default:
		return false
	}
}

// ImageElement models the img element of a rendered picture together with its
// declarative error handler: on the first load failure the generated source-set
// is cleared and the original image is substituted, exactly once.
type ImageElement struct {
	Src      string
	Srcset   string
	Sizes    string
	Fallback string
	// Sources is the number of sibling source elements still attached.
	Sources int
	State   LoadState

	// onError is true while the fallback handler is still attached.
	onError bool
}

// HasFallbackHandler reports whether a load failure would still trigger the fallback.
func (e *ImageElement) HasFallbackHandler() bool {
	return e.onError
}

// OnLoad records a successful load of the current source.
func (e *ImageElement) OnLoad() {
	switch e.State {
	case LoadPending:
		e.State = LoadLoaded
	case LoadFailed:
		e.State = LoadFallbackLoaded
	}
}

// OnError records a load failure (404, decode error, ...) of the current source.
func (e *ImageElement) OnError() {
	switch e.State {
	case LoadPending:
		if !e.onError {
			e.State = LoadBroken
			return
		}
		e.onError = false
		e.Srcset = ""
		e.Sizes = ""
		e.Sources = 0
		e.Src = e.Fallback
		e.State = LoadFailed
	case LoadFailed:
		e.State = LoadBroken
	}
}
