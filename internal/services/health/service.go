package health

// Message is the liveness message returned by the health endpoints.
const Message = "ATS Resume Checker API running"

// Service encapsulates health-related checks.
type Service struct {
	catalogVersion string
}

// NewService constructs a new health service reporting the loaded keyword
// catalog version.
func NewService(catalogVersion string) *Service {
	return &Service{catalogVersion: catalogVersion}
}

// Status returns the liveness payload.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": "OK", "message": Message}
}

// Ready reports whether a keyword catalog is loaded, with its version.
func (s *Service) Ready() (map[string]string, bool) {
	if s == nil || s.catalogVersion == "" {
		return map[string]string{"status": "UNAVAILABLE"}, false
	}
	return map[string]string{"status": "READY", "catalogVersion": s.catalogVersion}, true
}
