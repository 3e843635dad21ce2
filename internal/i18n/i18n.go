package i18n

import (
	"net/http"
	"strings"
)

// Language represents a supported UI language.
type Language string

const (
	LanguageSpanish Language = "es"
	LanguageEnglish Language = "en"
)

// DefaultLanguage is the language used when none can be resolved from the
// request. The application UI was historically Spanish-only.
const DefaultLanguage = LanguageSpanish

// Messages contains all translatable UI strings used by the web interface.
type Messages struct {
	AppTitle             string `json:"appTitle"`
	AppSubtitle          string `json:"appSubtitle"`
	NavHome              string `json:"navHome"`
	NavRegister          string `json:"navRegister"`
	NavLogin             string `json:"navLogin"`
	NavCreate            string `json:"navCreate"`
	NavManage            string `json:"navManage"`
	NavGuide             string `json:"navGuide"`
	LabelFirstName       string `json:"labelFirstName"`
	LabelPaternalSurname string `json:"labelPaternalSurname"`
	LabelMaternalSurname string `json:"labelMaternalSurname"`
	LabelBirthDate       string `json:"labelBirthDate"`
	LabelEmail           string `json:"labelEmail"`
	LabelPassword        string `json:"labelPassword"`
	LabelCompany         string `json:"labelCompany"`
	LabelDomain          string `json:"labelDomain"`
	LabelIssueDate       string `json:"labelIssueDate"`
	LabelExpiryDate      string `json:"labelExpiryDate"`
	LabelIssuer          string `json:"labelIssuer"`
	LabelAlgorithm       string `json:"labelAlgorithm"`
	ColumnDigest         string `json:"columnDigest"`
	ColumnStatus         string `json:"columnStatus"`
	ColumnActions        string `json:"columnActions"`
	ButtonRegister       string `json:"buttonRegister"`
	ButtonLogin          string `json:"buttonLogin"`
	ButtonCreate         string `json:"buttonCreate"`
	ButtonSave           string `json:"buttonSave"`
	ButtonEdit           string `json:"buttonEdit"`
	ButtonDelete         string `json:"buttonDelete"`
	StatusExpired        string `json:"statusExpired"`
	StatusValid          string `json:"statusValid"`
	EmptyCertificates    string `json:"emptyCertificates"`
	FlashFieldsRequired  string `json:"flashFieldsRequired"`
	FlashInvalidDate     string `json:"flashInvalidDate"`
	FlashBadAlgorithm    string `json:"flashBadAlgorithm"`
	FlashUserCreated     string `json:"flashUserCreated"`
	FlashUserFailed      string `json:"flashUserFailed"`
	FlashLoginSuccess    string `json:"flashLoginSuccess"`
	FlashBadCredentials  string `json:"flashBadCredentials"`
	FlashCertCreated     string `json:"flashCertCreated"`
	FlashCertFailed      string `json:"flashCertFailed"`
	FlashCertUpdated     string `json:"flashCertUpdated"`
	FlashCertUpdateFail  string `json:"flashCertUpdateFail"`
	FlashCertDeleted     string `json:"flashCertDeleted"`
	FlashCertDeleteFail  string `json:"flashCertDeleteFail"`
	FlashCertNotFound    string `json:"flashCertNotFound"`
	FlashStoreDown       string `json:"flashStoreDown"`
	FlashListFailed      string `json:"flashListFailed"`
}

var spanishMessages = Messages{
	AppTitle:             "Gestor de Certificados",
	AppSubtitle:          "Registro y administración de certificados",
	NavHome:              "Inicio",
	NavRegister:          "Registro",
	NavLogin:             "Iniciar sesión",
	NavCreate:            "Crear certificado",
	NavManage:            "Gestionar certificados",
	NavGuide:             "Guía",
	LabelFirstName:       "Nombre",
	LabelPaternalSurname: "Apellido paterno",
	LabelMaternalSurname: "Apellido materno",
	LabelBirthDate:       "Fecha de nacimiento",
	LabelEmail:           "Correo electrónico",
	LabelPassword:        "Contraseña",
	LabelCompany:         "Compañía",
	LabelDomain:          "Dominio",
	LabelIssueDate:       "Fecha de emisión",
	LabelExpiryDate:      "Fecha de expiración",
	LabelIssuer:          "Emisor",
	LabelAlgorithm:       "Algoritmo",
	ColumnDigest:         "Huella",
	ColumnStatus:         "Estado",
	ColumnActions:        "Acciones",
	ButtonRegister:       "Registrar",
	ButtonLogin:          "Entrar",
	ButtonCreate:         "Crear",
	ButtonSave:           "Guardar",
	ButtonEdit:           "Editar",
	ButtonDelete:         "Eliminar",
	StatusExpired:        "Expirado",
	StatusValid:          "Vigente",
	EmptyCertificates:    "No hay certificados registrados.",
	FlashFieldsRequired:  "Todos los campos son requeridos.",
	FlashInvalidDate:     "Fecha inválida, use el formato AAAA-MM-DD.",
	FlashBadAlgorithm:    "Algoritmo no soportado.",
	FlashUserCreated:     "Usuario agregado exitosamente.",
	FlashUserFailed:      "No se pudo agregar el usuario.",
	FlashLoginSuccess:    "Inicio de sesión exitoso.",
	FlashBadCredentials:  "Credenciales inválidas.",
	FlashCertCreated:     "Certificado creado exitosamente.",
	FlashCertFailed:      "No se pudo crear el certificado.",
	FlashCertUpdated:     "Certificado actualizado exitosamente.",
	FlashCertUpdateFail:  "No se pudo actualizar el certificado.",
	FlashCertDeleted:     "Certificado eliminado exitosamente.",
	FlashCertDeleteFail:  "No se pudo eliminar el certificado.",
	FlashCertNotFound:    "Certificado no encontrado.",
	FlashStoreDown:       "No se pudo conectar a la base de datos.",
	FlashListFailed:      "Error al gestionar certificados.",
}

var englishMessages = Messages{
	AppTitle:             "Certificate Manager",
	AppSubtitle:          "Certificate registration and bookkeeping",
	NavHome:              "Home",
	NavRegister:          "Register",
	NavLogin:             "Log in",
	NavCreate:            "Create certificate",
	NavManage:            "Manage certificates",
	NavGuide:             "Guide",
	LabelFirstName:       "First name",
	LabelPaternalSurname: "Paternal surname",
	LabelMaternalSurname: "Maternal surname",
	LabelBirthDate:       "Birth date",
	LabelEmail:           "Email",
	LabelPassword:        "Password",
	LabelCompany:         "Company",
	LabelDomain:          "Domain",
	LabelIssueDate:       "Issue date",
	LabelExpiryDate:      "Expiry date",
	LabelIssuer:          "Issuer",
	LabelAlgorithm:       "Algorithm",
	ColumnDigest:         "Digest",
	ColumnStatus:         "Status",
	ColumnActions:        "Actions",
	ButtonRegister:       "Register",
	ButtonLogin:          "Log in",
	ButtonCreate:         "Create",
	ButtonSave:           "Save",
	ButtonEdit:           "Edit",
	ButtonDelete:         "Delete",
	StatusExpired:        "Expired",
	StatusValid:          "Valid",
	EmptyCertificates:    "No certificates registered.",
	FlashFieldsRequired:  "All fields are required.",
	FlashInvalidDate:     "Invalid date, use YYYY-MM-DD.",
	FlashBadAlgorithm:    "Unsupported algorithm.",
	FlashUserCreated:     "User added successfully.",
	FlashUserFailed:      "Could not add the user.",
	FlashLoginSuccess:    "Login successful.",
	FlashBadCredentials:  "Invalid credentials.",
	FlashCertCreated:     "Certificate created successfully.",
	FlashCertFailed:      "Could not create the certificate.",
	FlashCertUpdated:     "Certificate updated successfully.",
	FlashCertUpdateFail:  "Could not update the certificate.",
	FlashCertDeleted:     "Certificate deleted successfully.",
	FlashCertDeleteFail:  "Could not delete the certificate.",
	FlashCertNotFound:    "Certificate not found.",
	FlashStoreDown:       "Could not connect to the database.",
	FlashListFailed:      "Failed to list certificates.",
}

// MessagesForLanguage returns the message catalog for a language, falling back
// to Spanish for anything unsupported.
func MessagesForLanguage(language Language) Messages {
	switch language {
	case LanguageEnglish:
		return englishMessages
	default:
		return spanishMessages
	}
}

// ParseLanguage normalizes a language tag to a supported language.
func ParseLanguage(value string) (Language, bool) {
	tag := strings.ToLower(strings.TrimSpace(value))
	if idx := strings.IndexAny(tag, "-_"); idx > 0 {
		tag = tag[:idx]
	}
	switch Language(tag) {
	case LanguageSpanish:
		return LanguageSpanish, true
	case LanguageEnglish:
		return LanguageEnglish, true
	default:
		return DefaultLanguage, false
	}
}

// ResolveLanguage determines the UI language from the lang query parameter,
// then the Accept-Language header, then the default.
func ResolveLanguage(r *http.Request) Language {
	if value := r.URL.Query().Get("lang"); value != "" {
		if language, ok := ParseLanguage(value); ok {
			return language
		}
	}
	header := r.Header.Get("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if language, ok := ParseLanguage(tag); ok {
			return language
		}
	}
	return DefaultLanguage
}
