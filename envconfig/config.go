// config.go - Haupt-Konfigurationsfunktionen fuer calibprep
//
// Dieses Modul enthaelt:
// - Host: Gibt die Listen-Adresse fuer den Batch-Server zurueck (CALIB_HOST)
// - AllowedOrigins: Gibt erlaubte Origins zurueck (CALIB_ORIGINS)
// - ImageDir/IndexFile: Pfade zum Kalibrierungs-Datensatz
// - LogLevel: Gibt Log-Level zurueck (CALIB_DEBUG)
//
// Weitere Konfigurationen sind ausgelagert:
// - config_calib.go: Pipeline- und Batch-Parameter
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Host gibt Scheme und Host des Batch-Servers zurueck
// Konfigurierbar via CALIB_HOST
// Default: http://127.0.0.1:11500
func Host() *url.URL {
	defaultPort := "11500"

	s := strings.TrimSpace(Var("CALIB_HOST"))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// AllowedOrigins gibt erlaubte Origins zurueck
// Konfigurierbar via CALIB_ORIGINS (komma-separiert)
// Enthaelt Standard-Origins fuer localhost
func AllowedOrigins() (origins []string) {
	if s := Var("CALIB_ORIGINS"); s != "" {
		origins = strings.Split(s, ",")
	}

	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			fmt.Sprintf("http://%s", origin),
			fmt.Sprintf("https://%s", origin),
			fmt.Sprintf("http://%s", net.JoinHostPort(origin, "*")),
			fmt.Sprintf("https://%s", net.JoinHostPort(origin, "*")),
		)
	}

	return origins
}

// ImageDir gibt das Verzeichnis der Kalibrierungsbilder zurueck
// Konfigurierbar via CALIB_IMAGE_DIR
// Default: ./calib_images
func ImageDir() string {
	if s := Var("CALIB_IMAGE_DIR"); s != "" {
		return s
	}
	return "calib_images"
}

// IndexFile gibt den Pfad der Index-Datei zurueck (ein Dateiname pro Zeile)
// Konfigurierbar via CALIB_INDEX_FILE
// Default: ./labels.txt
func IndexFile() string {
	if s := Var("CALIB_INDEX_FILE"); s != "" {
		return s
	}
	return "labels.txt"
}

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via CALIB_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("CALIB_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
