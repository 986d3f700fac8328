package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_status_service.go -package=mocks -mock_names=StatusService=MockStatusService humata-ai/internal/service StatusService

// APIKeyStatus is a snapshot of the configured model credentials.
type APIKeyStatus struct {
	Total     int
	Available int
	Failed    int
}

// StatusService reports credential availability.
type StatusService interface {
	// APIKeyStatus derives the status from configuration. It does no I/O.
	APIKeyStatus() APIKeyStatus
}

type statusService struct {
	credentials []string
}

// NewStatusService creates a StatusService over the given credentials. Empty
// values are not counted.
func NewStatusService(credentials ...string) StatusService {
	return &statusService{credentials: credentials}
}

func (s *statusService) APIKeyStatus() APIKeyStatus {
	var configured int
	for _, c := range s.credentials {
		if c != "" {
			configured++
		}
	}
	// Keys are not probed, so every configured key counts as available.
	return APIKeyStatus{
		Total:     configured,
		Available: configured,
		Failed:    0,
	}
}
