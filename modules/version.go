package modules

// Application info - centralized
const (
	AppName        = "labops"
	AppVersion     = "0.3.0"
	AppDescription = "Terminal dashboard for laboratory operations"
)
