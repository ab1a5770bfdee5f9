package models

import (
	"net/url"
	"strings"
	"time"
)

// Status is the sales-order item status as stored by the back office
type Status int

const (
	StatusPending    Status = 1
	StatusInProgress Status = 2
	StatusCompleted  Status = 3
	StatusCancelled  Status = 4
)

// AllStatuses lists statuses in picker order
var AllStatuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// String returns the display name of the status
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

// ParseStatus accepts a status id ("3") or a name ("completed", "in-progress")
func ParseStatus(v string) (Status, bool) {
	norm := strings.ToLower(strings.TrimSpace(v))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	for _, s := range AllStatuses {
		if norm == strings.ToLower(s.String()) {
			return s, true
		}
	}
	switch norm {
	case "1":
		return StatusPending, true
	case "2":
		return StatusInProgress, true
	case "3":
		return StatusCompleted, true
	case "4":
		return StatusCancelled, true
	}
	return 0, false
}

// Severity is the visual weight of a status tag
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityNone    Severity = ""
)

// StatusSeverity maps a status name to its tag severity
func StatusSeverity(name string) Severity {
	switch name {
	case "Completed":
		return SeveritySuccess
	case "In Progress":
		return SeverityInfo
	case "Pending":
		return SeverityWarning
	case "Cancelled":
		return SeverityDanger
	default:
		return SeverityNone
	}
}

// JobOrderStatusCompleted is the job-order sub-status name that unlocks completion
const JobOrderStatusCompleted = "Completed"

// JobOrderStatus is one entry in an item's job-order status trail
type JobOrderStatus struct {
	ID             string `json:"id"`
	JobOrderMainID string `json:"job_order_main_id"`
	Status         string `json:"status"`
	StatusName     string `json:"status_name"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// Customer is the customer attached to an order line
type Customer struct {
	ID               string `json:"id"`
	FirstName        string `json:"fname"`
	LastName         string `json:"lname,omitempty"`
	Email            string `json:"email,omitempty"`
	MobileNumber     string `json:"mobileNumber"`
	AlternateContact string `json:"alternateContact,omitempty"`
	SiteCode         string `json:"admsite_code"`
}

// FullName returns "first last" without dangling spaces
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// MaterialMeasurement is a measurement the material requires
type MaterialMeasurement struct {
	ID       string `json:"id"`
	Name     string `json:"measurement_name"`
	DataType string `json:"data_type"`
	Seq      int    `json:"seq"`
}

// Material is the product/fabric of an order line
type Material struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	ImageURLs    []string              `json:"image_url,omitempty"`
	MaterialType string                `json:"material_type"`
	WSP          *float64              `json:"wsp,omitempty"`
	MRP          *float64              `json:"mrp,omitempty"`
	Measurements []MaterialMeasurement `json:"measurements,omitempty"`
}

// OrderMain is the sales order header
type OrderMain struct {
	ID                    string   `json:"id"`
	DocNo                 string   `json:"docno"`
	OrderDate             string   `json:"order_date"`
	TentativeDeliveryDate string   `json:"tentitive_delivery_date,omitempty"`
	OrderAmount           *float64 `json:"ord_amt,omitempty"`
	AmountPaid            *float64 `json:"amt_paid,omitempty"`
	AmountDue             *float64 `json:"amt_due,omitempty"`
	Description           string   `json:"desc1,omitempty"`
}

// MeasurementMaster names one measurement field
type MeasurementMaster struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"measurement_name"`
	DataType string `json:"data_type"`
}

// MeasurementDetail is one captured measurement value
type MeasurementDetail struct {
	ID                  string            `json:"id,omitempty"`
	MeasurementMasterID string            `json:"measurement_master_id,omitempty"`
	MeasurementMainID   string            `json:"measurement_main_id,omitempty"`
	Value               string            `json:"measurement_val"`
	Master              MeasurementMaster `json:"measurementMaster"`
}

// MeasurementMain is the measurement header linked to an order line
type MeasurementMain struct {
	ID              string              `json:"id"`
	DocNo           string              `json:"docno"`
	MeasurementDate string              `json:"measurement_date"`
	Details         []MeasurementDetail `json:"measurementDetails,omitempty"`
}

// StatusHistory is one status change of the order line
type StatusHistory struct {
	ID         string `json:"id"`
	StatusID   int    `json:"status_id"`
	StatusName string `json:"status_name"`
	ChangedAt  string `json:"changed_at"`
	ChangedBy  string `json:"changed_by,omitempty"`
}

// PriceChart is a stitching/sales price for the item type
type PriceChart struct {
	ID         string  `json:"id"`
	TypeID     int     `json:"type_id"`
	JobOrSales string  `json:"job_or_sales"`
	Price      float64 `json:"price"`
	Type       struct {
		TypeName string `json:"type_name"`
	} `json:"type"`
}

// PendingItem is one row of the pending sales report: an order line joined
// with its customer, material and status trail.
type PendingItem struct {
	ID             string           `json:"id"`
	OrderID        string           `json:"order_id"`
	CustomerID     string           `json:"customerID"`
	CustomerName   string           `json:"customerName"`
	ProductID      string           `json:"productID"`
	ProductName    string           `json:"productName"`
	ProductRef     string           `json:"productRef"`
	DeliveryDate   string           `json:"deliveryDate"`
	TrialDate      string           `json:"trialDate,omitempty"`
	ReceivedDate   string           `json:"receivedDate,omitempty"`
	SiteCode       string           `json:"admsite_code"`
	StatusID       Status           `json:"statusId"`
	Status         string           `json:"status"`
	OrderedQty     *int             `json:"ord_qty,omitempty"`
	DeliveredQty   *int             `json:"delivered_qty,omitempty"`
	CancelledQty   *int             `json:"cancelled_qty,omitempty"`
	ItemAmount     *float64         `json:"item_amt,omitempty"`
	ItemDiscount   *float64         `json:"item_discount,omitempty"`
	JobOrderStatus []JobOrderStatus `json:"jobOrderStatus"`
	LastJobID      *string          `json:"last_jobId"`

	Customer        *Customer        `json:"customer,omitempty"`
	Material        *Material        `json:"material,omitempty"`
	OrderMain       *OrderMain       `json:"orderMain,omitempty"`
	MeasurementMain *MeasurementMain `json:"measurementMain,omitempty"`
	StatusHistory   []StatusHistory  `json:"statusHistory,omitempty"`
	PriceChart      []PriceChart     `json:"priceChart,omitempty"`
}

// Key identifies a row across pages
func (p PendingItem) Key() string {
	return p.OrderID + "-" + p.ID
}

// HasJobOrder reports whether a job order exists for the item
func (p PendingItem) HasJobOrder() bool {
	return len(p.JobOrderStatus) > 0
}

// LatestJobOrderStatus returns the most recent job-order sub-status name, or ""
func (p PendingItem) LatestJobOrderStatus() string {
	if len(p.JobOrderStatus) == 0 {
		return ""
	}
	return p.JobOrderStatus[len(p.JobOrderStatus)-1].StatusName
}

// JobOrderCompleted reports whether the latest job-order sub-status is Completed
func (p PendingItem) JobOrderCompleted() bool {
	return p.LatestJobOrderStatus() == JobOrderStatusCompleted
}

// SalesOrderPath is the web dashboard path of the item's sales order
func (p PendingItem) SalesOrderPath() string {
	return "/pages/orders/sales-order?id=" + url.QueryEscape(p.OrderID) + "&source=pending-sales"
}

// JobOrderPath is the web dashboard path that creates the item's job order,
// or views it when one exists.
func (p PendingItem) JobOrderPath() string {
	path := "/pages/orders/job-order?id=" + url.QueryEscape(p.OrderID)
	if !p.HasJobOrder() {
		path += "&completed=false"
	}
	return path + "&source=pending-sales"
}

// PaginatorInfo is the paging block returned with every report page
type PaginatorInfo struct {
	Total        int  `json:"total"`
	PerPage      int  `json:"perPage"`
	CurrentPage  int  `json:"currentPage"`
	LastPage     int  `json:"lastPage"`
	HasMorePages bool `json:"hasMorePages"`
}

// PendingPage is one page of the pending sales report
type PendingPage struct {
	Data          []PendingItem `json:"data"`
	PaginatorInfo PaginatorInfo `json:"paginatorInfo"`
}

// Measurement is one flattened entry of a measurement sheet
type Measurement struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Value    string `json:"value"`
}

// MeasurementSheet is the measurement record for one order line
type MeasurementSheet struct {
	OrderID      string        `json:"order_id"`
	ItemID       string        `json:"item_id"`
	Date         string        `json:"measurement_date"`
	Measurements []Measurement `json:"measurements"`
}

// Gender is the profile gender marker
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// UserProfile is the signed-in user's profile
type UserProfile struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      Gender     `json:"gender"`
	AvatarURL   string     `json:"avatar,omitempty"`
	Role        string     `json:"role"`
	Department  string     `json:"department"`
	JoinDate    *time.Time `json:"joinDate,omitempty"`
}

// Initials returns the upper-cased first letters of first and last name
func (u UserProfile) Initials() string {
	var b strings.Builder
	for _, part := range []string{u.FirstName, u.LastName} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
	}
	return b.String()
}

// QuickAction is a dashboard shortcut
type QuickAction struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Color       string `json:"color"`
}

// QuickActions returns the shortcuts shown on the home dashboard
func QuickActions() []QuickAction {
	return []QuickAction{
		{ID: "add-customer", Label: "Add Customer", Description: "Register new customer", Path: "/pages/customer/customer-list", Color: "#3b82f6"},
		{ID: "create-order", Label: "New Order", Description: "Create sales order", Path: "/pages/orders/create-order", Color: "#10b981"},
		{ID: "add-product", Label: "Add Product", Description: "Add new product", Path: "/pages/products", Color: "#f59e0b"},
		{ID: "job-order", Label: "Job Order", Description: "Create job order", Path: "/pages/orders/job-order", Color: "#8b5cf6"},
		{ID: "pending-payments", Label: "Payments", Description: "View pending payments", Path: "/pages/reports/pending-payments", Color: "#ef4444"},
		{ID: "reports", Label: "Reports", Description: "View reports", Path: "/pages/reports/pending-sales", Color: "#06b6d4"},
	}
}

// HistoryAction is the kind of mutation recorded in local history
type HistoryAction string

const (
	HistoryStatusChange  HistoryAction = "status"
	HistoryDelete        HistoryAction = "delete"
	HistoryProfileUpdate HistoryAction = "profile"
)

// HistoryEntry records one mutation the user attempted
type HistoryEntry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Action    HistoryAction `json:"action"`
	RowID     string        `json:"row_id,omitempty"`
	Detail    string        `json:"detail"`
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
}

// Config is the persisted client configuration
type Config struct {
	APIURL           string `json:"api_url,omitempty"`
	APIToken         string `json:"api_token,omitempty"`
	DashboardURL     string `json:"dashboard_url,omitempty"`
	PerPage          int    `json:"per_page,omitempty"`
	SearchDebounceMS int    `json:"search_debounce_ms,omitempty"`
	LongPressMS      int    `json:"long_press_ms,omitempty"`
	LastSearch       string `json:"last_search,omitempty"`
}
