// Package document defines the report+invoice Document and the operations
// that edit it.
//
// A Document is a plain value tree. Every edit goes through Update, Insert,
// RemoveAt or RemoveByID, which work on a clone and return the new snapshot;
// the snapshot passed in is never modified.
//
// Example YAML:
//
//	meta:
//	  year: "2025"
//	  month: "05"
//	  clientName: Sample Project Co., Ltd.
//	threatStats:
//	  - {name: Port Scan, count: 8500, color: "#64748b"}
//	invoice:
//	  currency: USD
//	  taxRatePercent: 0
//	  items:
//	    - {id: i1, description: Monthly fee, quantity: 1, unitPrice: 4500}
package document

// Document is the root aggregate holding all report and invoice data for one
// editing session.
type Document struct {
	Meta             Meta             `json:"meta" yaml:"meta"`
	Summary          Summary          `json:"summary" yaml:"summary"`
	ThreatStats      []ThreatStat     `json:"threatStats" yaml:"threatStats"`
	SecurityAnalysis SecurityAnalysis `json:"securityAnalysis" yaml:"securityAnalysis"`
	ResourceStats    ResourceStats    `json:"resourceStats" yaml:"resourceStats"`
	Assets           []Asset          `json:"assets" yaml:"assets"`
	Performance      Performance      `json:"performance" yaml:"performance"`
	Evidence         []EvidenceItem   `json:"evidence" yaml:"evidence"`
	Changes          []ChangeLogEntry `json:"changes" yaml:"changes"`
	News             []NewsItem       `json:"news" yaml:"news"`
	Roadmap          Roadmap          `json:"roadmap" yaml:"roadmap"`
	Invoice          Invoice          `json:"invoice" yaml:"invoice"`
}

// Meta describes the reporting period and the parties of the report.
type Meta struct {
	Year         string `json:"year" yaml:"year"`
	Month        string `json:"month" yaml:"month"`
	ClientName   string `json:"clientName" yaml:"clientName"`
	IssueDate    string `json:"issueDate" yaml:"issueDate"`
	Author       string `json:"author" yaml:"author"`
	Organization string `json:"organization" yaml:"organization"`
}

// HealthScore is the overall grade of the audited environment.
type HealthScore string

const (
	ScoreS HealthScore = "S"
	ScoreA HealthScore = "A"
	ScoreB HealthScore = "B"
	ScoreC HealthScore = "C"
)

// Valid reports whether s is one of the known grades.
func (s HealthScore) Valid() bool {
	switch s {
	case ScoreS, ScoreA, ScoreB, ScoreC:
		return true
	}
	return false
}

// Summary is the executive summary block.
type Summary struct {
	Score          HealthScore `json:"score" yaml:"score"`
	Uptime         string      `json:"uptime" yaml:"uptime"`
	ThreatsBlocked int         `json:"threatsBlocked" yaml:"threatsBlocked"`
	BackupStatus   string      `json:"backupStatus" yaml:"backupStatus"`
	Comment        string      `json:"comment" yaml:"comment"`
}

// ThreatStat is one category of blocked attacks. Order is display order.
type ThreatStat struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
	Color string `json:"color" yaml:"color"` // #rrggbb
}

// SecurityAnalysis holds the two commentary blocks of the statistics page.
type SecurityAnalysis struct {
	GlobalIPTitle     string `json:"globalIpTitle" yaml:"globalIpTitle"`
	GlobalIPComment   string `json:"globalIpComment" yaml:"globalIpComment"`
	BotDefenseTitle   string `json:"botDefenseTitle" yaml:"botDefenseTitle"`
	BotDefenseComment string `json:"botDefenseComment" yaml:"botDefenseComment"`
}

// ResourceStat is one month of a resource usage series.
// Month is an axis label and cannot be edited.
type ResourceStat struct {
	Month string  `json:"month" yaml:"month" readonly:"true"`
	Value float64 `json:"value" yaml:"value"`
}

// ResourceStats holds the two parallel usage series.
type ResourceStats struct {
	Storage []ResourceStat `json:"storage" yaml:"storage"`
	CPU     []ResourceStat `json:"cpu" yaml:"cpu"`
}

// AssetStatus is the operational state of an asset.
type AssetStatus string

const (
	StatusHealthy  AssetStatus = "Healthy"
	StatusWarning  AssetStatus = "Warning"
	StatusCritical AssetStatus = "Critical"
)

// Valid reports whether s is a known status.
func (s AssetStatus) Valid() bool {
	switch s {
	case StatusHealthy, StatusWarning, StatusCritical:
		return true
	}
	return false
}

// Asset is one monitored host or device.
type Asset struct {
	ID       string      `json:"id" yaml:"id"`
	HostName string      `json:"hostName" yaml:"hostName"`
	Role     string      `json:"role" yaml:"role"`
	OS       string      `json:"os" yaml:"os"`
	Status   AssetStatus `json:"status" yaml:"status"`
	Detail   string      `json:"detail" yaml:"detail"`
}

// EvidenceCategory selects the icon of an evidence card.
type EvidenceCategory string

const (
	CategoryStorage  EvidenceCategory = "storage"
	CategorySecurity EvidenceCategory = "security"
	CategoryActivity EvidenceCategory = "activity"
)

// Valid reports whether c is a known category.
func (c EvidenceCategory) Valid() bool {
	switch c {
	case CategoryStorage, CategorySecurity, CategoryActivity:
		return true
	}
	return false
}

// EvidenceItem is one entry of the curated operational evidence list.
type EvidenceItem struct {
	ID          string           `json:"id" yaml:"id"`
	Title       string           `json:"title" yaml:"title"`
	Status      string           `json:"status" yaml:"status"`
	Date        string           `json:"date" yaml:"date"`
	Description string           `json:"description" yaml:"description"`
	Category    EvidenceCategory `json:"category" yaml:"category"`
}

// ChangeLogEntry is one maintenance or configuration change.
type ChangeLogEntry struct {
	ID      string `json:"id" yaml:"id"`
	Date    string `json:"date" yaml:"date"`
	Type    string `json:"type" yaml:"type"`
	Content string `json:"content" yaml:"content"`
	Result  string `json:"result" yaml:"result"`
	Owner   string `json:"owner" yaml:"owner"`
}

// NewsItem is one threat-intelligence article.
type NewsItem struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Date    string `json:"date" yaml:"date"`
	Source  string `json:"source" yaml:"source"`
	Content string `json:"content" yaml:"content"`
	Impact  string `json:"impact" yaml:"impact"`
}

// Performance holds the analyst commentary of the performance page.
type Performance struct {
	StorageAnalysis string `json:"storageAnalysis" yaml:"storageAnalysis"`
	DeviceAnalysis  string `json:"deviceAnalysis" yaml:"deviceAnalysis"`
	WebAnalysis     string `json:"webAnalysis" yaml:"webAnalysis"`
	LoadAnalysis    string `json:"loadAnalysis" yaml:"loadAnalysis"`
}

// Roadmap holds the recommendations text blocks.
type Roadmap struct {
	NextMonthPlan   string `json:"nextMonthPlan" yaml:"nextMonthPlan"`
	StrategicAdvice string `json:"strategicAdvice" yaml:"strategicAdvice"`
}

// Currency is an ISO 4217 code accepted on invoices.
type Currency string

const (
	JPY Currency = "JPY"
	USD Currency = "USD"
	PHP Currency = "PHP"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case JPY, USD, PHP:
		return true
	}
	return false
}

// Party is a name plus a free-form multi-line address block.
type Party struct {
	Name    string `json:"name" yaml:"name"`
	Details string `json:"details" yaml:"details"`
}

// Bank holds the remittance account.
type Bank struct {
	Name        string `json:"name" yaml:"name"`
	Branch      string `json:"branch" yaml:"branch"`
	SWIFT       string `json:"swift" yaml:"swift"`
	AccountType string `json:"accountType" yaml:"accountType"`
	AccountNo   string `json:"accountNo" yaml:"accountNo"`
	Holder      string `json:"holder" yaml:"holder"`
}

// Invoice is the billing part of the document.
type Invoice struct {
	Number         string     `json:"number" yaml:"number"`
	IssueDate      string     `json:"issueDate" yaml:"issueDate"`
	DueDate        string     `json:"dueDate" yaml:"dueDate"`
	Currency       Currency   `json:"currency" yaml:"currency"`
	TaxRatePercent float64    `json:"taxRatePercent" yaml:"taxRatePercent"`
	LogoSrc        string     `json:"logoSrc,omitempty" yaml:"logoSrc,omitempty"` // data URI, stored verbatim
	Sender         Party      `json:"sender" yaml:"sender"`
	Client         Party      `json:"client" yaml:"client"`
	Bank           Bank       `json:"bank" yaml:"bank"`
	Notes          string     `json:"notes" yaml:"notes"`
	Items          []LineItem `json:"items" yaml:"items"`
}

// LineItem is one billed position.
type LineItem struct {
	ID          string  `json:"id" yaml:"id"`
	Description string  `json:"description" yaml:"description"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	UnitPrice   float64 `json:"unitPrice" yaml:"unitPrice"`
}

// Clone returns a deep copy of d. Lists are copied so that edits on the
// clone never alias the original.
func (d *Document) Clone() *Document {
	c := *d
	c.ThreatStats = cloneSlice(d.ThreatStats)
	c.ResourceStats.Storage = cloneSlice(d.ResourceStats.Storage)
	c.ResourceStats.CPU = cloneSlice(d.ResourceStats.CPU)
	c.Assets = cloneSlice(d.Assets)
	c.Evidence = cloneSlice(d.Evidence)
	c.Changes = cloneSlice(d.Changes)
	c.News = cloneSlice(d.News)
	c.Invoice.Items = cloneSlice(d.Invoice.Items)
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
