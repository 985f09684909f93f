package services

// ServiceContainer aggregates the service interfaces handed to the HTTP
// layer.
type ServiceContainer struct {
	Barter    BarterSvcFacade
	Reporting ReportingSvcFacade
}
