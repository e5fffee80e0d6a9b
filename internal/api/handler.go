package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/domain"
	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/report"
	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/store"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	secret string
}

// New constructs a Handler.
func New(st *store.Store, secret string) *Handler {
	return &Handler{store: st, secret: secret}
}

// Router wires up the HTTP surface. Every listing and mutating route
// sits behind the session gate; only the auth pages are open.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Get("/", h.index)
	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Get("/register", h.registerPage)
	r.Post("/register", h.register)
	r.Get("/logout", h.logout)

	r.Group(func(pr chi.Router) {
		pr.Use(h.sessionMiddleware)

		pr.Get("/home", h.home)
		pr.Get("/inventory-management", h.entryForm)
		pr.Post("/inventory-management", h.createItem)
		pr.Get("/add-items", h.entryForm)
		pr.Post("/add-items", h.createItem)
		pr.Get("/view-items", h.viewItems)
		pr.Post("/acquire-item/{id}", h.acquireItem)
		pr.Post("/delete-item/{id}", h.deleteItem)
		pr.Get("/reports-analytics", h.reports)
		pr.Post("/reports-analytics", h.reports)
		pr.Get("/help-support", h.helpSupport)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Auth handlers

type registerForm struct {
	Email           string `validate:"required,email"`
	Username        string `validate:"required"`
	Password        string `validate:"required,min=8,alphanum"`
	ConfirmPassword string `validate:"required"`
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"page": "login", "flash": popFlash(w, r)})
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"page": "register", "flash": popFlash(w, r)})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed form")
		return
	}
	form := registerForm{
		Email:           r.PostFormValue("email"),
		Username:        r.PostFormValue("username"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if fieldErrs := validateForm(form); fieldErrs != nil {
		setFlash(w, firstMessage(fieldErrs, "password", "email", "username", "confirmpassword"))
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if form.Password != form.ConfirmPassword {
		setFlash(w, "Passwords do not match")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}
	if _, err := h.store.CreateUser(r.Context(), form.Email, form.Username, string(hashed)); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			setFlash(w, "Username or Email already exists")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create user")
		return
	}

	setFlash(w, "Registration successful! You can now log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed form")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.store.FindUserByUsername(r.Context(), username)
	// Do not disclose which of the two fields failed.
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		setFlash(w, "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := h.issueSession(user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start session")
		return
	}
	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Dashboard(r.Context(), isoToday())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute dashboard")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"username":  usernameFromContext(r.Context()),
		"dashboard": stats,
		"flash":     popFlash(w, r),
	})
}

// Inventory handlers

type itemForm struct {
	Category   string `validate:"required,oneof='Medical Drugs' 'Medical Equipments' 'Pharmaceuticals'"`
	Name       string `validate:"required"`
	Quantity   int64  `validate:"min=0"`
	ExpiryDate string `validate:"required"`
}

func (h *Handler) entryForm(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": domain.Categories(),
		"flash":      popFlash(w, r),
	})
}

// createItem serves both entry routes. A submission through
// /add-items lands on the listing afterwards; /inventory-management
// returns to its own form.
func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	backTo := r.URL.Path
	nextTo := backTo
	if backTo == "/add-items" {
		nextTo = "/view-items"
	}

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed form")
		return
	}
	quantity, err := strconv.ParseInt(r.PostFormValue("quantity"), 10, 64)
	if err != nil || quantity < 0 {
		setFlash(w, "Quantity must be a non-negative number")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}
	form := itemForm{
		Category:   r.PostFormValue("category"),
		Name:       r.PostFormValue("name"),
		Quantity:   quantity,
		ExpiryDate: r.PostFormValue("expiry_date"),
	}
	if fieldErrs := validateForm(form); fieldErrs != nil {
		setFlash(w, firstMessage(fieldErrs, "category", "name", "quantity", "expirydate"))
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}
	if _, err := time.Parse("2006-01-02", form.ExpiryDate); err != nil {
		setFlash(w, "Expiry date must be in YYYY-MM-DD format")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	_, err = h.store.CreateItem(r.Context(), domain.Item{
		Category:   form.Category,
		Name:       form.Name,
		Quantity:   form.Quantity,
		ExpiryDate: form.ExpiryDate,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to add item")
		return
	}
	setFlash(w, "Item added successfully!")
	http.Redirect(w, r, nextTo, http.StatusSeeOther)
}

func (h *Handler) viewItems(w http.ResponseWriter, r *http.Request) {
	today := isoToday()
	filter := store.ViewFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}
	items, err := h.store.FilterItems(r.Context(), filter, today)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list items")
		return
	}
	categories, err := h.store.DistinctCategories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list categories")
		return
	}
	// The dropdown reflects actual data plus the expiry pseudo-category.
	categories = append(categories, "Expired")

	respondJSON(w, http.StatusOK, map[string]any{
		"items":        items,
		"categories":   categories,
		"current_date": today,
		"flash":        popFlash(w, r),
	})
}

func (h *Handler) acquireItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if err := h.store.AcquireItem(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			setFlash(w, "Item not found!")
			http.Redirect(w, r, "/view-items", http.StatusSeeOther)
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to acquire item")
		return
	}
	setFlash(w, "Item acquired successfully!")
	http.Redirect(w, r, "/view-items", http.StatusSeeOther)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if err := h.store.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrItemUsed) {
			setFlash(w, "Cannot delete item. It has been used or does not exist.")
			http.Redirect(w, r, "/view-items", http.StatusSeeOther)
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to delete item")
		return
	}
	setFlash(w, "Item deleted successfully!")
	http.Redirect(w, r, "/view-items", http.StatusSeeOther)
}

// Reports

func (h *Handler) reports(w http.ResponseWriter, r *http.Request) {
	today := isoToday()

	var filter store.ReportFilter
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			respondError(w, http.StatusBadRequest, "malformed form")
			return
		}
		filter.Category = r.PostFormValue("category")
		filter.Status = r.PostFormValue("status")
	}

	items, err := h.store.ReportItems(r.Context(), filter, today)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to run report")
		return
	}

	if r.Method == http.MethodPost && r.PostForm.Has("download") {
		h.download(w, r.PostFormValue("format"), items)
		return
	}

	categories, err := h.store.DistinctCategories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"stock_items":       items,
		"categories":        categories,
		"selected_category": filter.Category,
		"selected_status":   filter.Status,
		"flash":             popFlash(w, r),
	})
}

func (h *Handler) download(w http.ResponseWriter, format string, items []domain.Item) {
	rows := report.Project(items)

	var (
		payload     []byte
		filename    string
		contentType string
		err         error
	)
	switch format {
	case "csv":
		payload, err = report.EncodeCSV(rows)
		filename, contentType = report.CSVFilename, "text/csv"
	case "excel":
		payload, err = report.EncodeXLSX(rows)
		filename, contentType = report.XLSXFilename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		payload, err = report.EncodePDF(rows)
		filename, contentType = report.PDFFilename, "application/pdf"
	default:
		respondError(w, http.StatusBadRequest, "format must be csv, excel or pdf")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to encode report")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// Help

func (h *Handler) helpSupport(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"contact": map[string]string{
			"email":    "support@inventory-tracker.example",
			"linkedin": "https://linkedin.com/company/inventory-tracker",
			"whatsapp": "https://wa.me/0000000000",
		},
		"flash": popFlash(w, r),
	})
}

// Helpers

func isoToday() string {
	return time.Now().Format("2006-01-02")
}

// firstMessage picks the highest-priority field error for the flash
// notice; any remaining message backstops unknown fields.
func firstMessage(fieldErrs map[string]string, order ...string) string {
	for _, field := range order {
		if msg, ok := fieldErrs[field]; ok {
			return msg
		}
	}
	for _, msg := range fieldErrs {
		return msg
	}
	return "invalid input"
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
