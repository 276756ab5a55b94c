package routes

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"freightdesk/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func withLogging(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func SetupRoutes(
	logger *zap.Logger,
	sessionHandler *handlers.SessionHandler,
	jobHandler *handlers.JobHandler,
	partyHandler *handlers.PartyHandler,
	referenceHandler *handlers.ReferenceHandler,
	pdfHandler *handlers.PDFHandler,
) {
	wrap := func(h http.HandlerFunc) http.Handler {
		return withCORS(withLogging(logger, http.HandlerFunc(handlers.RecoverWrapper(logger, h))))
	}

	// Form session routes
	http.Handle("/session", wrap(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sessionHandler.OpenSession(w, r)
	}))
	http.Handle("/session/", wrap(func(w http.ResponseWriter, r *http.Request) {
		sessionHandler.Route(w, r, r.URL.Path[len("/session/"):])
	}))

	// Job routes
	http.Handle("/jobs", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			jobHandler.CreateJob(w, r)
		case http.MethodGet:
			jobHandler.GetAllJobs(w, r)
		case http.MethodDelete:
			jobHandler.DeleteJob(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	http.Handle("/jobs/pdf", wrap(pdfHandler.JobOrderPDF))

	// Get or update job by ID
	http.Handle("/jobs/", wrap(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/jobs/"):]
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			jobHandler.GetJobByID(w, r, id)
		case http.MethodPut:
			jobHandler.UpdateJob(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Party routes
	http.Handle("/parties", wrap(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		partyHandler.GetAllParties(w, r)
	}))
	http.Handle("/parties/wizard", wrap(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		partyHandler.OpenWizard(w, r)
	}))
	http.Handle("/parties/wizard/", wrap(func(w http.ResponseWriter, r *http.Request) {
		partyHandler.RouteWizard(w, r, r.URL.Path[len("/parties/wizard/"):])
	}))

	// Reference data routes
	http.Handle("/reference", wrap(referenceHandler.GetOptions))
	http.Handle("/company-profile", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			referenceHandler.SaveCompanyProfile(w, r)
		case http.MethodGet:
			referenceHandler.GetCompanyProfile(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}
