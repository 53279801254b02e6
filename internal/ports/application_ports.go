package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherClient WeatherClient
	Geocoder      Geocoder
	WeatherCache  WeatherCache
	IconCache     IconCache

	// Locations
	LocationRepository LocationRepository
	LocationEvents     LocationEvents

	// Alerts
	ChangeNotifier WeatherChangeNotifier

	// Cache
	CacheMetrics CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	HealthChecker  SystemHealthChecker
}
