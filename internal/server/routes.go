package server

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Portfolio routes
	api.HandleFunc("/assets", handler.GetAssets).Methods("GET")
	api.HandleFunc("/assets", handler.SaveAsset).Methods("POST")
	api.HandleFunc("/assets/{id}", handler.DeleteAsset).Methods("DELETE")
	api.HandleFunc("/transactions", handler.GetTransactions).Methods("GET")
	api.HandleFunc("/summary", handler.GetSummary).Methods("GET")

	// Market data routes
	api.HandleFunc("/market/{symbol}/candles", handler.GetCandles).Methods("GET")
	api.HandleFunc("/market/{symbol}/quote", handler.GetQuote).Methods("GET")
	api.HandleFunc("/market/{symbol}/snapshot", handler.GetSnapshot).Methods("GET")
	api.HandleFunc("/market/{symbol}/insight", handler.GetInsight).Methods("GET")

	// Trading routes
	api.HandleFunc("/trades", handler.PlaceTrade).Methods("POST")

	return r
}
