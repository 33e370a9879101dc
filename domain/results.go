package domain

// Payload is a tagged capability result. Each capability returns exactly
// one concrete payload type, with an explicit no-data variant where the
// entity may be unknown.
type Payload interface {
	Kind() string
}

// Order is one order record from the business dataset.
type Order struct {
	Doctor    string  `json:"doctor"`
	OrderID   string  `json:"order_id"`
	Status    string  `json:"status"`
	Product   string  `json:"product"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Quantity  int     `json:"quantity"`
	Hospital  string  `json:"hospital"`
	Specialty string  `json:"specialty"`
}

// OrderSummary aggregates orders for one doctor (or all doctors).
type OrderSummary struct {
	Doctor       string         `json:"doctor"`
	TotalOrders  int            `json:"total_orders"`
	TotalValue   float64        `json:"total_value"`
	StatusCounts map[string]int `json:"status_summary"`
	RecentOrders []Order        `json:"recent_orders"`
}

func (OrderSummary) Kind() string { return "orders" }

// ContactMade is one business contact recorded during an engagement.
type ContactMade struct {
	ContactType string `json:"contact_type"`
	Contact     string `json:"contact"`
	Date        string `json:"date"`
	Purpose     string `json:"purpose"`
}

// EngagementInfo is the most recent engagement for a doctor. NoData is
// the explicit sentinel for an entity with no engagement records.
type EngagementInfo struct {
	Doctor        string        `json:"doctor"`
	NoData        bool          `json:"no_data,omitempty"`
	LastDate      string        `json:"last_engagement_date"`
	Type          string        `json:"engagement_type"`
	Outcome       string        `json:"outcome"`
	TalkingPoints []string      `json:"talking_points"`
	ContactsMade  []ContactMade `json:"contacts_made"`
}

func (EngagementInfo) Kind() string { return "engagements" }

// RiskTier classifies annual-limit utilization.
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// ComplianceStatus reports spend against the annual limit for a doctor.
// NoData distinguishes an unknown entity from a valid zero-value result.
type ComplianceStatus struct {
	Doctor          string   `json:"doctor"`
	NoData          bool     `json:"no_data,omitempty"`
	AnnualLimit     float64  `json:"annual_limit"`
	CurrentSpent    float64  `json:"current_spent"`
	Remaining       float64  `json:"remaining"`
	PercentageUsed  float64  `json:"percentage_used"`
	Risk            RiskTier `json:"risk_level"`
	Recommendations []string `json:"recommendations"`
	LastUpdated     string   `json:"last_updated"`
}

func (ComplianceStatus) Kind() string { return "compliance" }

// AnalyticsMode selects the analytics report shape.
type AnalyticsMode string

const (
	AnalyticsTrends   AnalyticsMode = "trends"
	AnalyticsRegional AnalyticsMode = "regional"
	AnalyticsInsights AnalyticsMode = "insights"
)

// ProductTrend is one product row of the trends report.
type ProductTrend struct {
	Product        string  `json:"product"`
	Month          string  `json:"month"`
	Orders         int     `json:"orders"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	GrowthPct      float64 `json:"growth_pct"`
	CompletionRate float64 `json:"completion_rate"`
	AvgTurnaround  float64 `json:"avg_turnaround_days"`
}

// RegionPerformance is one region row of the regional report.
type RegionPerformance struct {
	Region      string   `json:"region"`
	TotalOrders int      `json:"total_orders"`
	Revenue     float64  `json:"revenue"`
	GrowthPct   float64  `json:"growth_pct"`
	TopProducts []string `json:"top_products"`
	KeyAccounts int      `json:"key_accounts"`
}

// AnalyticsReport is the analytics capability payload; exactly one of the
// row sets is populated according to Mode.
type AnalyticsReport struct {
	Mode     AnalyticsMode       `json:"mode"`
	Trends   []ProductTrend      `json:"trends,omitempty"`
	Regions  []RegionPerformance `json:"regions,omitempty"`
	Insights []string            `json:"insights,omitempty"`
}

func (AnalyticsReport) Kind() string { return "analytics" }

// KnowledgeAnswer is the knowledge capability payload. Fallback marks a
// canned answer produced while the retrieval service was unavailable;
// consumers must not resolve fallback citations into signed links.
type KnowledgeAnswer struct {
	Query     string     `json:"query"`
	Text      string     `json:"text"`
	Fallback  bool       `json:"fallback"`
	Citations []Citation `json:"citations,omitempty"`
}

func (KnowledgeAnswer) Kind() string { return "knowledge" }
