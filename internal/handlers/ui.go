package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"certbook/internal/certs"
	cberrors "certbook/internal/errors"
	"certbook/internal/i18n"
	"certbook/internal/logger"
	"certbook/internal/store"
	"certbook/internal/users"
	"certbook/internal/validation"
	"certbook/internal/version"
	"certbook/middleware"
)

type pageTemplateData struct {
	Language       string
	Messages       i18n.Messages
	Flash          *Flash
	AppVersionText string
}

type certFormTemplateData struct {
	pageTemplateData
	CertificateID string
	Company       string
	Domain        string
	IssueDate     string
	ExpiryDate    string
	Issuer        string
	Algorithm     string
}

type certRowTemplateData struct {
	ID         string
	Company    string
	Domain     string
	IssueDate  string
	ExpiryDate string
	Issuer     string
	Algorithm  string
	Digest     string
	Expired    bool
}

type manageTemplateData struct {
	pageTemplateData
	Rows []certRowTemplateData
}

type uiHandler struct {
	templates    *template.Template
	users        store.UserStore
	certificates store.CertificateStore
	now          func() time.Time
}

// RegisterUIRoutes wires the server-rendered views: landing page, registration,
// login, and the certificate CRUD forms.
func RegisterUIRoutes(router chi.Router, st store.Store, webFS fs.FS) {
	templates, err := template.New("").ParseFS(webFS, "templates/*.html")
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to parse templates")
		templates = template.New("")
	}

	h := &uiHandler{
		templates:    templates,
		users:        st.UserStore(),
		certificates: st.CertificateStore(),
		now:          time.Now,
	}

	router.Get("/", h.index)
	router.Get("/register", h.registerForm)
	router.Post("/register", h.register)
	router.Get("/login", h.loginForm)
	router.Post("/login", h.login)
	router.Get("/create_certificate", h.createForm)
	router.Post("/create_certificate", h.create)
	router.Get("/manage_certificates", h.manage)
	router.Get("/edit_certificate/{id}", h.editForm)
	router.Post("/edit_certificate/{id}", h.edit)
	router.Get("/delete_certificate/{id}", h.delete)
}

// page assembles the shared template data. A non-nil flash overrides whatever
// is pending in the cookie; the cookie is cleared either way.
func (h *uiHandler) page(w http.ResponseWriter, r *http.Request, flash *Flash) pageTemplateData {
	pending := popFlash(w, r)
	if flash == nil {
		flash = pending
	}
	language := i18n.ResolveLanguage(r)
	return pageTemplateData{
		Language:       string(language),
		Messages:       i18n.MessagesForLanguage(language),
		Flash:          flash,
		AppVersionText: version.Version,
	}
}

func (h *uiHandler) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.HTTPError(r.Method, r.URL.Path, http.StatusInternalServerError, err).
			Str("request_id", requestID).
			Str("template", name).
			Msg("failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func flashMessageForError(err error, messages i18n.Messages, fallback string) string {
	switch {
	case errors.Is(err, cberrors.ErrFieldRequired):
		return messages.FlashFieldsRequired
	case errors.Is(err, cberrors.ErrInvalidDate):
		return messages.FlashInvalidDate
	case errors.Is(err, cberrors.ErrUnknownAlgorithm):
		return messages.FlashBadAlgorithm
	case errors.Is(err, cberrors.ErrStoreUnavailable):
		return messages.FlashStoreDown
	case errors.Is(err, cberrors.ErrCertificateNotFound):
		return messages.FlashCertNotFound
	default:
		return fallback
	}
}

func (h *uiHandler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html", h.page(w, r, nil))
}

func (h *uiHandler) registerForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", h.page(w, r, nil))
}

func (h *uiHandler) register(w http.ResponseWriter, r *http.Request) {
	firstName := r.FormValue("nombre")
	paternalSurname := r.FormValue("apellido_paterno")
	maternalSurname := r.FormValue("apellido_materno")
	birthDate := r.FormValue("fecha_nacimiento")
	email := r.FormValue("correo_registro")
	password := r.FormValue("contraseña_registro")

	data := h.page(w, r, nil)
	messages := data.Messages

	if err := validation.RequireAll(firstName, paternalSurname, maternalSurname, birthDate, email, password); err != nil {
		data.Flash = &Flash{Level: "error", Message: messages.FlashFieldsRequired}
		h.render(w, r, "register.html", data)
		return
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.HTTPError(r.Method, r.URL.Path, http.StatusInternalServerError, err).
			Str("request_id", requestID).
			Msg("failed to hash password")
		data.Flash = &Flash{Level: "error", Message: messages.FlashUserFailed}
		h.render(w, r, "register.html", data)
		return
	}

	// Duplicate emails are accepted; the store does not enforce uniqueness.
	_, err = h.users.Insert(r.Context(), users.User{
		FirstName:       firstName,
		PaternalSurname: paternalSurname,
		MaternalSurname: maternalSurname,
		BirthDate:       birthDate,
		Email:           email,
		PasswordHash:    hash,
	})
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.StoreError("insert_user", err).
			Str("request_id", requestID).
			Msg("failed to insert user")
		data.Flash = &Flash{Level: "error", Message: flashMessageForError(err, messages, messages.FlashUserFailed)}
		h.render(w, r, "register.html", data)
		return
	}

	data.Flash = &Flash{Level: "success", Message: messages.FlashUserCreated}
	h.render(w, r, "register.html", data)
}

func (h *uiHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", h.page(w, r, nil))
}

func (h *uiHandler) login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	data := h.page(w, r, nil)
	messages := data.Messages

	if err := validation.RequireAll(username, password); err != nil {
		data.Flash = &Flash{Level: "error", Message: messages.FlashFieldsRequired}
		h.render(w, r, "login.html", data)
		return
	}

	user, err := h.users.FindByEmail(r.Context(), username)
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.StoreError("find_user", err).
			Str("request_id", requestID).
			Msg("failed to look up user")
		data.Flash = &Flash{Level: "error", Message: flashMessageForError(err, messages, messages.FlashStoreDown)}
		h.render(w, r, "login.html", data)
		return
	}

	// "No such user" and "wrong password" are indistinguishable to the client.
	if user == nil || !user.CheckPassword(password) {
		data.Flash = &Flash{Level: "error", Message: messages.FlashBadCredentials}
		h.render(w, r, "login.html", data)
		return
	}

	// No session is established: authentication does not gate later routes.
	setFlash(w, "success", messages.FlashLoginSuccess)
	http.Redirect(w, r, "/create_certificate", http.StatusSeeOther)
}

type certificateForm struct {
	Company    string
	Domain     string
	IssueDate  string
	ExpiryDate string
	Issuer     string
	Algorithm  string
}

func readCertificateForm(r *http.Request) certificateForm {
	return certificateForm{
		Company:    r.FormValue("company"),
		Domain:     r.FormValue("domain"),
		IssueDate:  r.FormValue("issue_date"),
		ExpiryDate: r.FormValue("expiry_date"),
		Issuer:     r.FormValue("issuer"),
		Algorithm:  r.FormValue("algorithm"),
	}
}

// parseCertificateForm validates field presence, the algorithm and the date
// formats, returning a record without ID or Digest.
func parseCertificateForm(form certificateForm) (certs.Certificate, error) {
	if err := validation.RequireAll(form.Company, form.Domain, form.IssueDate, form.ExpiryDate, form.Issuer, form.Algorithm); err != nil {
		return certs.Certificate{}, err
	}
	algorithm, err := certs.ParseAlgorithm(form.Algorithm)
	if err != nil {
		return certs.Certificate{}, err
	}
	issueDate, err := validation.ParseDate(form.IssueDate)
	if err != nil {
		return certs.Certificate{}, err
	}
	expiryDate, err := validation.ParseDate(form.ExpiryDate)
	if err != nil {
		return certs.Certificate{}, err
	}
	return certs.Certificate{
		Company:    form.Company,
		Domain:     form.Domain,
		IssueDate:  issueDate,
		ExpiryDate: expiryDate,
		Issuer:     form.Issuer,
		Algorithm:  algorithm,
	}, nil
}

func (h *uiHandler) createForm(w http.ResponseWriter, r *http.Request) {
	data := certFormTemplateData{pageTemplateData: h.page(w, r, nil)}
	h.render(w, r, "create_certificate.html", data)
}

func (h *uiHandler) create(w http.ResponseWriter, r *http.Request) {
	form := readCertificateForm(r)
	data := certFormTemplateData{pageTemplateData: h.page(w, r, nil)}
	messages := data.Messages

	certificate, err := parseCertificateForm(form)
	if err != nil {
		data.Flash = &Flash{Level: "error", Message: flashMessageForError(err, messages, messages.FlashCertFailed)}
		h.render(w, r, "create_certificate.html", data)
		return
	}

	// The digest fingerprints the submitted text, dates included verbatim.
	digest, err := certs.ComputeDigest(form.Company, form.Domain, form.IssueDate, form.ExpiryDate, form.Issuer, certificate.Algorithm)
	if err != nil {
		data.Flash = &Flash{Level: "error", Message: flashMessageForError(err, messages, messages.FlashCertFailed)}
		h.render(w, r, "create_certificate.html", data)
		return
	}
	certificate.Digest = digest

	if _, err := h.certificates.Insert(r.Context(), certificate); err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.StoreError("insert_certificate", err).
			Str("request_id", requestID).
			Msg("failed to insert certificate")
		data.Flash = &Flash{Level: "error", Message: flashMessageForError(err, messages, messages.FlashCertFailed)}
		h.render(w, r, "create_certificate.html", data)
		return
	}

	setFlash(w, "success", messages.FlashCertCreated)
	http.Redirect(w, r, "/manage_certificates", http.StatusSeeOther)
}

func (h *uiHandler) manage(w http.ResponseWriter, r *http.Request) {
	data := manageTemplateData{pageTemplateData: h.page(w, r, nil)}
	messages := data.Messages

	certificates, err := h.certificates.List(r.Context())
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.StoreError("list_certificates", err).
			Str("request_id", requestID).
			Msg("failed to list certificates")
		setFlash(w, "error", flashMessageForError(err, messages, messages.FlashListFailed))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	views := certs.AnnotateAll(certificates, h.now())
	rows := make([]certRowTemplateData, 0, len(views))
	for _, view := range views {
		rows = append(rows, certRowTemplateData{
			ID:         view.ID,
			Company:    view.Company,
			Domain:     view.Domain,
			IssueDate:  view.IssueDate.Format(certs.DateFormat),
			ExpiryDate: view.ExpiryDate.Format(certs.DateFormat),
			Issuer:     view.Issuer,
			Algorithm:  string(view.Algorithm),
			Digest:     view.Digest,
			Expired:    view.Expired,
		})
	}
	data.Rows = rows
	h.render(w, r, "manage_certificates.html", data)
}

func (h *uiHandler) editForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data := certFormTemplateData{pageTemplateData: h.page(w, r, nil)}
	messages := data.Messages

	certificate, err := h.certificates.Get(r.Context(), id)
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.StoreError("get_certificate", err).
			Str("request_id", requestID).
			Str("certificate_id", id).
			Msg("failed to get certificate")
		setFlash(w, "error", flashMessageForError(err, messages, messages.FlashCertNotFound))
		http.Redirect(w, r, "/manage_certificates", http.StatusSeeOther)
		return
	}
	if certificate == nil {
		setFlash(w, "error", messages.FlashCertNotFound)
		http.Redirect(w, r, "/manage_certificates", http.StatusSeeOther)
		return
	}

	data.CertificateID = certificate.ID
	data.Company = certificate.Company
	data.Domain = certificate.Domain
	data.IssueDate = certificate.IssueDate.Format(certs.DateFormat)
	data.ExpiryDate = certificate.ExpiryDate.Format(certs.DateFormat)
	data.Issuer = certificate.Issuer
	data.Algorithm = string(certificate.Algorithm)
	h.render(w, r, "edit_certificate.html", data)
}

func (h *uiHandler) edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := readCertificateForm(r)
	data := certFormTemplateData{pageTemplateData: h.page(w, r, nil)}
	messages := data.Messages

	certificate, err := parseCertificateForm(form)
	if err != nil {
		data.Flash = &Flash{Level: "error", Message: flashMessageForError(err, messages, messages.FlashCertUpdateFail)}
		data.CertificateID = id
		data.Company = form.Company
		data.Domain = form.Domain
		data.IssueDate = form.IssueDate
		data.ExpiryDate = form.ExpiryDate
		data.Issuer = form.Issuer
		data.Algorithm = form.Algorithm
		h.render(w, r, "edit_certificate.html", data)
		return
	}

	// The stored digest is deliberately left as created; see DESIGN.md.
	if err := h.certificates.Update(r.Context(), id, certificate); err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.StoreError("update_certificate", err).
			Str("request_id", requestID).
			Str("certificate_id", id).
			Msg("failed to update certificate")
		setFlash(w, "error", flashMessageForError(err, messages, messages.FlashCertUpdateFail))
		http.Redirect(w, r, "/manage_certificates", http.StatusSeeOther)
		return
	}

	setFlash(w, "success", messages.FlashCertUpdated)
	http.Redirect(w, r, "/manage_certificates", http.StatusSeeOther)
}

func (h *uiHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	messages := i18n.MessagesForLanguage(i18n.ResolveLanguage(r))

	// Deleting an unknown id still reports success.
	if err := h.certificates.Delete(r.Context(), id); err != nil {
		requestID := middleware.GetRequestID(r.Context())
		logger.StoreError("delete_certificate", err).
			Str("request_id", requestID).
			Str("certificate_id", id).
			Msg("failed to delete certificate")
		setFlash(w, "error", flashMessageForError(err, messages, messages.FlashCertDeleteFail))
		http.Redirect(w, r, "/manage_certificates", http.StatusSeeOther)
		return
	}

	setFlash(w, "success", messages.FlashCertDeleted)
	http.Redirect(w, r, "/manage_certificates", http.StatusSeeOther)
}
