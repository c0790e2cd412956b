package repositories

// RepositoryProvider holds all outbound ports needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Store   KVStoreFacade
	Backend BackendGatewayFacade
}
