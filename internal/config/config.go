package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client when mirroring remote vCard sources.
var UserAgent = "Go-Ppl/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Ppl"
	AppID             = "com.github.tartampluch.go-ppl"
	KeyringService    = "com.github.tartampluch.go-ppl"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "config.toml"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs and mirrored contact caches.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache and config directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagMode         = "mode"
	FlagLang         = "lang"
	FlagPort         = "port"
	FlagTarget       = "target"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to the settings file (TOML)"
	FlagDescMode     = "Parser mode: structured or simple"
	FlagDescLang     = "UI language override (ISO 639-1)"
	FlagDescPort     = "Port for the local feed server"
	FlagDescTarget   = "Previously presented value for the Copy verb"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings Keys & Defaults (see internal/config/settings.go)
// -----------------------------------------------------------------------------

const (
	// Default protocol handlers. The %s placeholder receives the dial/mail target.
	DefaultCallProtocol = "tel:%s"
	DefaultMailProtocol = "mailto:%s"

	ProtocolPlaceholder = "%s"

	DefaultLanguage   = "en"
	DefaultPort       = "18081"
	DefaultParserMode = ParserModeStructured

	ParserModeStructured = "structured"
	ParserModeSimple     = "simple"

	SampleVCFName = "sample-contacts.vcf"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// vCard Properties & Type Tokens
// -----------------------------------------------------------------------------

const (
	VCardBegin = "BEGIN:VCARD"
	VCardEnd   = "END:VCARD"

	VCardFN       = "FN"
	VCardN        = "N"
	VCardTel      = "TEL"
	VCardEmail    = "EMAIL"
	VCardBDAY     = "BDAY"
	VCardTitle    = "TITLE"
	VCardNickname = "NICKNAME"
	VCardNote     = "NOTE"
	VCardOrg      = "ORG"
	VCardAdr      = "ADR"

	VCardParamType = "TYPE"

	// Normalized type slots. Map keys in Contact.Phones/Mailboxes/Addresses
	// are always one of these or an uppercased vendor token.
	TypeCell     = "CELL"
	TypeWork     = "WORK"
	TypeHome     = "HOME"
	TypeMain     = "MAIN"
	TypeOther    = "OTHER"
	TypeInternet = "INTERNET"

	PropertySeparator = ":"
	ParamSeparator    = ";"
)

// PhoneSlots lists the known phone type tokens in the fixed display order
// used by card formatting and suffix routing.
var PhoneSlots = []string{TypeWork, TypeCell, TypeHome, TypeMain}

// -----------------------------------------------------------------------------
// Verbs
// -----------------------------------------------------------------------------

const (
	VerbCall = "Call"
	VerbCell = "Cell"
	VerbHome = "Home"
	VerbWork = "Work"
	VerbMail = "Mail"
	VerbInfo = "Info"
	VerbCopy = "Copy"

	// LblMainPhone captions the switchboard number row on the contact card.
	// No verb dials the MAIN slot directly; the generic Call chain reaches it.
	LblMainPhone = "Main"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Fallback year for truncated --MM-DD dates. Must be a leap year so
	// Feb 29 survives the round-trip.
	DefaultLeapYear = 2000

	// Limits
	MaxSuggestions = 10
	MinPort        = 1
	MaxPort        = 65535
)

// -----------------------------------------------------------------------------
// iCalendar Export (birthday feed)
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Ppl//Engine//EN"
	ICalCalName = "Contact Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goppl"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	// UID Generation
	UIDSalt         = "go-ppl-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	FallbackSummary = "Birthday: %s"

	// StubVCalendar is the minimal valid iCalendar object used when no
	// contact carries a birthday.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB; a directory export is text, not photos
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteFeed           = "/"
	RouteContacts       = "/contacts"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrSettingsDecode   = "failed to decode settings file"
	ErrSettingsProtocol = "protocol template is missing the %s placeholder"
	ErrModeUnsupport    = "configuration error: unsupported parser mode"
	ErrFileOpen         = "failed to open vCard file"
	ErrFileMirror       = "failed to mirror vCard source"
	ErrFetcherMissing   = "internal error: source fetcher is not initialized"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrVerbUnknown      = "unknown verb"
	ErrContactIndex     = "contact index out of range"
	ErrNoTarget         = "verb has no applicable value for this contact"
	ErrClipboard        = "failed to set clipboard"
	ErrLaunch           = "failed to launch URL handler"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrSampleInstall    = "failed to install sample contacts file"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Directory initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgLoadStarted    = "Contact load started"
	MsgLoadFinished   = "Contact load finished"
	MsgFileLoading    = "Loading vCard file"
	MsgFileSkipped    = "Skipping unreadable vCard file"
	MsgFileMirrored   = "Mirrored external vCard source"
	MsgMirrorSkipped  = "Mirror skipped, source unavailable"
	MsgSampleInstall  = "No vCard files configured, installing sample"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedLine    = "Skipping malformed vCard line"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgDroppedRecord  = "Dropping vCard block without a name"
	MsgGenSuccess     = "Birthday calendar generation successful"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Feed cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgVerbResolved   = "Verb resolved"
	MsgDispatching    = "Dispatching action"
	MsgClipboardSet   = "Copied to clipboard"
	MsgKeyringMiss    = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSettingsLoaded = "Settings loaded"
	MsgUsingDefaults  = "No settings file, using defaults"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeySource    = "source"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyVerb      = "verb"
	LogKeyQuery     = "query"
	LogKeyIndex     = "index"
	LogKeyTarget    = "target"
	LogKeyLine      = "line"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyKept      = "contacts_kept"
	LogKeyDropped   = "blocks_dropped"
	LogKeyWarnings  = "warnings"
	LogKeyFiles     = "files"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompConfig  = "config"
	CompParser  = "parser"
	CompVerb    = "verb"
	CompEngine  = "engine"
	CompFetcher = "fetcher"
	CompServer  = "server"
	CompI18n    = "i18n"
	CompAction  = "action"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyVerbCall = "verb_call"
	TKeyVerbCell = "verb_cell"
	TKeyVerbHome = "verb_home"
	TKeyVerbWork = "verb_work"
	TKeyVerbMail = "verb_mail"
	TKeyVerbInfo = "verb_info"
	TKeyVerbCopy = "verb_copy"

	TKeyLblName  = "lbl_name"
	TKeyLblMail  = "lbl_mail"
	TKeyLblTitle = "lbl_title"
)
