package main

import (
	"log"
	"net"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/analytics"
	"github.com/freddy0077/chapelstack-backend-sub002/internal/config"
	"github.com/freddy0077/chapelstack-backend-sub002/internal/database"
	"github.com/freddy0077/chapelstack-backend-sub002/internal/handlers"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, dialect, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db, dialect)
	service := analytics.New(repo, cfg.Analytics, nil)
	h := handlers.New(service)

	log.Printf("Server starting on http://localhost:%s", cfg.ServerPort)
	for _, ip := range lanIPs() {
		log.Printf("LAN access: http://%s:%s", ip, cfg.ServerPort)
	}
	if err := http.ListenAndServe(":"+cfg.ServerPort, handlers.Router(h)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// lanIPs lists the IPv4 addresses of interfaces that are up and not loopback.
func lanIPs() []string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	var ips []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, addr := range addrs {
			if ipNet, ok := addr.(*net.IPNet); ok {
				if v4 := ipNet.IP.To4(); v4 != nil {
					ips = append(ips, v4.String())
				}
			}
		}
	}
	return ips
}
