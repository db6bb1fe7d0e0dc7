// Package reference provides the read-only expedition catalog: routes, packing
// gear, climber profiles, budget line items, logistics, seasonal conditions and
// volcanic risk for the Ruth Gorge.
package reference

import "errors"

// Store errors.
var (
	ErrRouteNotFound       = errors.New("route not found")
	ErrClimberNotFound     = errors.New("climber not found")
	ErrPackingItemNotFound = errors.New("packing item not found")
	ErrBudgetItemNotFound  = errors.New("budget item not found")
	ErrDuplicateID         = errors.New("duplicate id in catalog")
)

// Catalog aggregates every reference collection.
type Catalog struct {
	Routes                []Route
	PackingCategories     []PackingCategory
	SpecialConsiderations []string
	WeightOptimization    []string
	Climbers              []ClimberProfile
	EssentialGear         []string
	BudgetGroups          []BudgetGroup
	BudgetNotes           []string
	Logistics             Logistics
	Seasonal              Seasonal
	Volcanic              VolcanicRisk
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Route is a climbing objective on a peak.
type Route struct {
	ID              string     `yaml:"id" json:"id"`
	Name            string     `yaml:"name" json:"name"`
	Peak            string     `yaml:"peak" json:"peak"`
	Grade           string     `yaml:"grade" json:"grade"`
	TechnicalGrade  string     `yaml:"technicalGrade" json:"technicalGrade"`
	VerticalGain    int        `yaml:"verticalGain" json:"verticalGain"`
	Category        string     `yaml:"category" json:"category"`
	Type            string     `yaml:"type" json:"type"`
	Characteristics string     `yaml:"characteristics" json:"characteristics"`
	Crux            string     `yaml:"crux" json:"crux"`
	Approach        string     `yaml:"approach" json:"approach"`
	TrafficLevel    string     `yaml:"trafficLevel" json:"trafficLevel"`
	ConditionWindow string     `yaml:"conditionWindow" json:"conditionWindow"`
	Notes           string     `yaml:"notes" json:"notes"`
	LandingZone     string     `yaml:"landingZone" json:"landingZone,omitempty"`
	Start           Coordinate `yaml:"start" json:"start"`
	Summit          Coordinate `yaml:"summit" json:"summit"`
	Accuracy        string     `yaml:"accuracy" json:"accuracy,omitempty"`
}

// Route categories.
const (
	CategoryClassic       = "Classic"
	CategoryModernClassic = "Modern Classic"
	CategoryModern        = "Modern"
	CategoryElite         = "Elite"
	CategoryObscure       = "Obscure"
)

// PackingCategory groups catalog items.
type PackingCategory struct {
	Name  string        `yaml:"name" json:"name"`
	Items []PackingItem `yaml:"items" json:"items"`
}

// PackingItem is a gear catalog entry. Weight is in grams.
type PackingItem struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Essential bool     `yaml:"essential" json:"essential"`
	Weight    int      `yaml:"weight" json:"weight"`
	Notes     string   `yaml:"notes" json:"notes"`
	Aliases   []string `yaml:"aliases" json:"aliases,omitempty"`
}

// ItemRef points at a packing catalog item by category and name.
type ItemRef struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// ClimberProfile is a team member. Weight is body weight in grams.
type ClimberProfile struct {
	ID         int      `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Role       string   `yaml:"role" json:"role"`
	Specialty  string   `yaml:"specialty" json:"specialty"`
	Weight     int      `yaml:"weight" json:"weight"`
	Bio        string   `yaml:"bio" json:"bio"`
	PresetGear []string `yaml:"presetGear" json:"presetGear"`
}

// GearResolution is the outcome of joining free-text gear names onto the
// packing catalog.
type GearResolution struct {
	Resolved   []ItemRef `json:"resolved"`
	Unresolved []string  `json:"unresolved"`
}

// BudgetGroup is a top-level budget section such as transportation.
type BudgetGroup struct {
	Key        string           `yaml:"key" json:"key"`
	Label      string           `yaml:"label" json:"label"`
	Categories []BudgetCategory `yaml:"categories" json:"categories"`
}

// BudgetCategory is a sub-category inside a group.
type BudgetCategory struct {
	Name  string           `yaml:"name" json:"name"`
	Items []BudgetLineItem `yaml:"items" json:"items"`
}

// BudgetLineItem is a single cost estimate in USD.
type BudgetLineItem struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Estimate float64 `yaml:"estimate" json:"estimate"`
	Notes    string  `yaml:"notes" json:"notes"`
	Required bool    `yaml:"required" json:"required"`
}

// BudgetItemRef locates a line item within its group.
type BudgetItemRef struct {
	GroupKey string
	Category string
	Item     BudgetLineItem
}

// Logistics holds air taxi, permit and town information.
type Logistics struct {
	AirTaxis       []AirTaxi      `yaml:"airTaxis" json:"airTaxis"`
	Permits        Permits        `yaml:"permits" json:"permits"`
	Accommodation  Accommodation  `yaml:"accommodation" json:"accommodation"`
	Communications Communications `yaml:"communications" json:"communications"`
	Supplies       Supplies       `yaml:"supplies" json:"supplies"`
	Transportation Transportation `yaml:"transportation" json:"transportation"`
	TimelineTips   TimelineTips   `yaml:"timelineTips" json:"timelineTips"`
}

// AirTaxi is a glacier flight operator out of Talkeetna.
type AirTaxi struct {
	Name         string        `yaml:"name" json:"name"`
	Website      string        `yaml:"website" json:"website"`
	Phone        string        `yaml:"phone" json:"phone"`
	Email        string        `yaml:"email" json:"email"`
	BaseLocation string        `yaml:"baseLocation" json:"baseLocation"`
	LandingZones []LandingZone `yaml:"landingZones" json:"landingZones"`
	WeightLimits string        `yaml:"weightLimits" json:"weightLimits"`
	SpecialNotes string        `yaml:"specialNotes" json:"specialNotes"`
}

// LandingZone is a glacier landing site. Elevation is in feet, price in USD.
type LandingZone struct {
	Name       string     `yaml:"name" json:"name"`
	Elevation  int        `yaml:"elevation" json:"elevation"`
	Price      float64    `yaml:"price" json:"price"`
	Notes      string     `yaml:"notes" json:"notes"`
	Coordinate Coordinate `yaml:"coordinate" json:"coordinate"`
}

// ServedLandingZone is a landing zone and the air taxis serving it.
type ServedLandingZone struct {
	LandingZone
	Operators []string `json:"operators"`
}

// Permits describes park registration.
type Permits struct {
	DenaliNationalPark  string        `yaml:"denaliNationalPark" json:"denaliNationalPark"`
	RegistrationProcess string        `yaml:"registrationProcess" json:"registrationProcess"`
	RangerStation       RangerStation `yaml:"rangerStation" json:"rangerStation"`
}

// RangerStation is the Talkeetna ranger station contact.
type RangerStation struct {
	Name    string `yaml:"name" json:"name"`
	Address string `yaml:"address" json:"address"`
	Phone   string `yaml:"phone" json:"phone"`
	Hours   string `yaml:"hours" json:"hours"`
	Notes   string `yaml:"notes" json:"notes"`
}

// Accommodation lists lodging and camping options.
type Accommodation struct {
	Talkeetna []Lodging `yaml:"talkeetna" json:"talkeetna"`
	Camping   Camping   `yaml:"camping" json:"camping"`
}

// Lodging is a place to stay in town.
type Lodging struct {
	Name       string `yaml:"name" json:"name"`
	Type       string `yaml:"type" json:"type"`
	PriceRange string `yaml:"priceRange" json:"priceRange"`
	Notes      string `yaml:"notes" json:"notes"`
}

// Camping describes camping rules.
type Camping struct {
	Info string `yaml:"info" json:"info"`
	Gear string `yaml:"gear" json:"gear"`
}

// Communications lists field communication options.
type Communications struct {
	Options          []CommunicationOption `yaml:"options" json:"options"`
	EmergencyContact EmergencyContact      `yaml:"emergencyContact" json:"emergencyContact"`
}

// CommunicationOption is a device or service.
type CommunicationOption struct {
	Type   string `yaml:"type" json:"type"`
	Notes  string `yaml:"notes" json:"notes"`
	Rental string `yaml:"rental" json:"rental"`
}

// EmergencyContact holds emergency numbers.
type EmergencyContact struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

// Supplies describes where to buy food, fuel and gear.
type Supplies struct {
	Talkeetna    SupplySource `yaml:"talkeetna" json:"talkeetna"`
	Anchorage    SupplySource `yaml:"anchorage" json:"anchorage"`
	Restrictions string       `yaml:"restrictions" json:"restrictions"`
}

// SupplySource is one town's shopping notes.
type SupplySource struct {
	Groceries string `yaml:"groceries" json:"groceries"`
	Fuel      string `yaml:"fuel" json:"fuel"`
	Gear      string `yaml:"gear" json:"gear"`
}

// Transportation describes getting to Talkeetna.
type Transportation struct {
	FromAnchorage []TransportOption `yaml:"fromAnchorage" json:"fromAnchorage"`
	InTalkeetna   string            `yaml:"inTalkeetna" json:"inTalkeetna"`
}

// TransportOption is one way to travel.
type TransportOption struct {
	Method  string `yaml:"method" json:"method"`
	Details string `yaml:"details" json:"details"`
}

// TimelineTips holds planning advice.
type TimelineTips struct {
	Planning        string `yaml:"planning" json:"planning"`
	Flexibility     string `yaml:"flexibility" json:"flexibility"`
	Acclimatization string `yaml:"acclimatization" json:"acclimatization"`
	Season          string `yaml:"season" json:"season"`
}

// Seasonal holds climbing season conditions.
type Seasonal struct {
	Overview          string             `yaml:"overview" json:"overview"`
	MonthlyConditions []MonthlyCondition `yaml:"monthlyConditions" json:"monthlyConditions"`
	OptimalWindows    OptimalWindows     `yaml:"optimalWindows" json:"optimalWindows"`
	WeatherPatterns   WeatherPatterns    `yaml:"weatherPatterns" json:"weatherPatterns"`
	SnowpackInfo      SnowpackInfo       `yaml:"snowpackInfo" json:"snowpackInfo"`
	ClimateChart      ClimateChart       `yaml:"climateChart" json:"climateChart"`
}

// MonthlyCondition summarizes one month of the season.
type MonthlyCondition struct {
	Month           string `yaml:"month" json:"month"`
	Temperature     string `yaml:"temperature" json:"temperature"`
	Precipitation   string `yaml:"precipitation" json:"precipitation"`
	Daylight        string `yaml:"daylight" json:"daylight"`
	Snowpack        string `yaml:"snowpack" json:"snowpack"`
	RouteConditions string `yaml:"routeConditions" json:"routeConditions"`
	Notes           string `yaml:"notes" json:"notes"`
}

// OptimalWindows lists the best periods per discipline.
type OptimalWindows struct {
	IceRoutes         string `yaml:"iceRoutes" json:"iceRoutes"`
	RockRoutes        string `yaml:"rockRoutes" json:"rockRoutes"`
	SkiMountaineering string `yaml:"skiMountaineering" json:"skiMountaineering"`
}

// WeatherPatterns describes typical spring weather.
type WeatherPatterns struct {
	SpringCycles string `yaml:"springCycles" json:"springCycles"`
	Storms       string `yaml:"storms" json:"storms"`
	Temperatures string `yaml:"temperatures" json:"temperatures"`
}

// SnowpackInfo describes avalanche conditions.
type SnowpackInfo struct {
	Depth         string `yaml:"depth" json:"depth"`
	Stability     string `yaml:"stability" json:"stability"`
	AvalancheRisk string `yaml:"avalancheRisk" json:"avalancheRisk"`
}

// ClimateChart holds twelve parallel monthly series. Temperatures are in °F,
// precipitation and snowfall in inches.
type ClimateChart struct {
	Months        []string  `yaml:"months" json:"months"`
	HighTemp      []float64 `yaml:"highTemp" json:"highTemp"`
	LowTemp       []float64 `yaml:"lowTemp" json:"lowTemp"`
	Precipitation []float64 `yaml:"precipitation" json:"precipitation"`
	Snowfall      []float64 `yaml:"snowfall" json:"snowfall"`
	Notes         string    `yaml:"notes" json:"notes"`
}

// VolcanicRisk summarizes the Mount Spurr ashfall hazard.
type VolcanicRisk struct {
	Volcano           Volcano           `yaml:"volcano" json:"volcano"`
	CurrentAlert      VolcanicAlert     `yaml:"currentAlert" json:"currentAlert"`
	EruptionHistory   []Eruption        `yaml:"eruptionHistory" json:"eruptionHistory"`
	WindProbabilities WindProbabilities `yaml:"windProbabilities" json:"windProbabilities"`
	Monitoring        []NamedDetail     `yaml:"monitoring" json:"monitoring"`
	Preparedness      Preparedness      `yaml:"preparedness" json:"preparedness"`
}

// Volcano is the volcano summary.
type Volcano struct {
	Name                  string `yaml:"name" json:"name"`
	ElevationFt           int    `yaml:"elevationFt" json:"elevationFt"`
	Location              string `yaml:"location" json:"location"`
	DistanceFromRuthGorge string `yaml:"distanceFromRuthGorge" json:"distanceFromRuthGorge"`
	Summary               string `yaml:"summary" json:"summary"`
}

// VolcanicAlert is the observatory alert status.
type VolcanicAlert struct {
	AsOf              string        `yaml:"asOf" json:"asOf"`
	AlertLevel        string        `yaml:"alertLevel" json:"alertLevel"`
	AviationColorCode string        `yaml:"aviationColorCode" json:"aviationColorCode"`
	Description       string        `yaml:"description" json:"description"`
	Indicators        []NamedDetail `yaml:"indicators" json:"indicators"`
	Outlook           string        `yaml:"outlook" json:"outlook"`
}

// Eruption is one historical eruption or unrest episode.
type Eruption struct {
	Date              string `yaml:"date" json:"date"`
	Ashfall           string `yaml:"ashfall" json:"ashfall"`
	Impacts           string `yaml:"impacts" json:"impacts"`
	AffectedRuthGorge string `yaml:"affectedRuthGorge" json:"affectedRuthGorge"`
}

// WindProbabilities holds monthly wind direction probabilities in percent.
type WindProbabilities struct {
	Months []string     `yaml:"months" json:"months"`
	Series []WindSeries `yaml:"series" json:"series"`
}

// WindSeries is one direction's monthly probabilities.
type WindSeries struct {
	Label  string    `yaml:"label" json:"label"`
	Values []float64 `yaml:"values" json:"values"`
}

// NamedDetail is a titled note.
type NamedDetail struct {
	Name   string `yaml:"name" json:"name"`
	Detail string `yaml:"detail" json:"detail"`
}

// Preparedness lists gear and response steps for an eruption.
type Preparedness struct {
	Gear         []NamedDetail   `yaml:"gear" json:"gear"`
	ResponsePlan []ResponsePhase `yaml:"responsePlan" json:"responsePlan"`
}

// ResponsePhase is an ordered checklist for one phase of an eruption.
type ResponsePhase struct {
	Phase string   `yaml:"phase" json:"phase"`
	Steps []string `yaml:"steps" json:"steps"`
}
