package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/geocode"
	"route-optimizer-service/internal/adapters/routing"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (ORS, OSRM, SQL geocode cache) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	osrmBase := getEnv("OSRM_BASE_URL", "https://router.project-osrm.org")
	orsKey := os.Getenv("ORS_API_KEY")
	mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY")

	// Key presence toggles the heavy-vehicle tier; without it, truck
	// requests fall through to the general profile with adjustment factors.
	var heavy ports.SegmentProvider
	if orsKey != "" {
		p, err := routing.NewORSProvider(orsKey)
		if err != nil {
			log.Fatal(err)
		}
		heavy = p
	} else {
		log.Println("ORS_API_KEY not set; heavy-vehicle provider disabled")
	}

	general := routing.NewOSRMProvider(osrmBase)

	segments := cache.NewSegmentCache(cache.DefaultSegmentCapacity)
	routes := cache.NewRouteCache(cache.DefaultRouteTTL, cache.DefaultRouteCapacity)

	resolver := services.NewResolver(heavy, general, segments)
	sequencer := services.NewSequencer(services.DefaultSequencerConfig(), resolver)
	optimizer := services.NewOptimizer(resolver, sequencer, routes, segments)

	geocoder := buildGeocoder(orsKey, mapsKey)

	// Periodic route-cache sweep keeps expired entries from sitting in
	// memory between requests.
	janitor := cron.New()
	if _, err := janitor.AddFunc("@every 5m", func() {
		removed := optimizer.PurgeRouteCache()
		stats := optimizer.RouteCacheStats()
		log.Printf("route cache sweep removed=%d count=%d approx_bytes=%d", removed, stats.Count, stats.ApproxSizeBytes)
	}); err != nil {
		log.Fatal(err)
	}
	janitor.Start()
	defer janitor.Stop()

	router := api.NewRouter(optimizer, geocoder)

	// Timeouts are tuned for cold-cache optimization (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildGeocoder assembles the boundary geocoder: Google Maps when a key is
// configured, ORS otherwise, both wrapped in a persistent cache. Returns
// nil when no provider credential is available.
func buildGeocoder(orsKey, mapsKey string) ports.Geocoder {
	var provider ports.Geocoder

	switch {
	case mapsKey != "":
		g, err := geocode.NewGoogleGeocoder(mapsKey)
		if err != nil {
			log.Fatal(err)
		}
		provider = g
	case orsKey != "":
		g, err := geocode.NewORSGeocoder(orsKey)
		if err != nil {
			log.Fatal(err)
		}
		provider = g
	default:
		log.Println("no geocoding credential set; /geocode disabled")
		return nil
	}

	return geocode.NewCachedGeocoder(provider, openGeocodeCache())
}

// openGeocodeCache prefers a shared Postgres cache (DATABASE_URL) and falls
// back to local SQLite. A nil cache only disables memoization, not geocoding.
func openGeocodeCache() ports.GeocodeCache {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		conn, err := db.OpenPostgres(databaseURL)
		if err != nil {
			log.Printf("postgres geocode cache unavailable: %v", err)
			return nil
		}
		return cache.NewSQLGeocodeCache(conn)
	}

	path := getEnv("GEOCODE_DB_PATH", "data/geocode.db")
	conn, err := db.OpenSqlite(path)
	if err != nil {
		log.Printf("sqlite geocode cache unavailable: %v", err)
		return nil
	}
	if err := cache.InitSqliteGeocodeSchema(conn); err != nil {
		log.Printf("sqlite geocode cache init failed: %v", err)
		return nil
	}
	return cache.NewSqliteGeocodeCache(conn)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
