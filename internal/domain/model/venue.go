// Package model contains domain models passed between layers.
package model

// Room is a canonical record from the room registry. Registry order matters:
// the first matching room wins.
type Room struct {
	RoomCode string `json:"roomcode" yaml:"roomcode"`
	RoomName string `json:"roomname" yaml:"roomname"`
	Dept     string `json:"dept" yaml:"dept"`
}

// Point is a location in whatever reference system the producer uses.
// For geographic points X is longitude and Y is latitude.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GeocodeAttributes are the raw locator attributes of a candidate.
type GeocodeAttributes struct {
	ResultID  int     `json:"ResultID"`
	LocName   *string `json:"Loc_name"`
	Status    string  `json:"Status"`
	Score     float64 `json:"Score"`
	MatchAddr string  `json:"Match_addr"`
	Xmin      float64 `json:"Xmin"`
	Xmax      float64 `json:"Xmax"`
	Ymin      float64 `json:"Ymin"`
	Ymax      float64 `json:"Ymax"`
	AddrType  string  `json:"Addr_type"`
}

// GeocodeCandidate is one scored location returned by the batch locator.
type GeocodeCandidate struct {
	Address    string            `json:"address"`
	Score      float64           `json:"score"`
	Location   Point             `json:"location"`
	Attributes GeocodeAttributes `json:"attributes"`
}

// SpatialReference identifies the projection of a geometry.
type SpatialReference struct {
	WKID       int `json:"wkid"`
	LatestWKID int `json:"latestWkid"`
}

// Geometry is a point geometry with its spatial reference.
type Geometry struct {
	X                float64          `json:"x"`
	Y                float64          `json:"y"`
	Z                float64          `json:"z"`
	SpatialReference SpatialReference `json:"spatialReference"`
}

// NetworkAttributes are the POI layer attributes of a network feature.
type NetworkAttributes struct {
	ObjectID  int    `json:"OBJECTID"`
	Shape     string `json:"SHAPE"`
	Name      string `json:"NAME"`
	Code      string `json:"CODE"`
	Category  string `json:"CATEGORY"`
	ShapeLeng string `json:"SHAPE_Leng"`
	OrigFID   int    `json:"ORIG_FID"`
	Floor     string `json:"FLOOR"`
}

// NetworkFeature is a map network lookup result used to enrich a match.
type NetworkFeature struct {
	LayerID          int               `json:"layerId"`
	LayerName        string            `json:"layerName"`
	DisplayFieldName string            `json:"displayFieldName"`
	FoundFieldName   string            `json:"foundFieldName"`
	Value            string            `json:"value"`
	Attributes       NetworkAttributes `json:"attributes"`
	GeometryType     string            `json:"geometryType"`
	Geometry         Geometry          `json:"geometry"`
}

// MatchRecord pairs a venue with whatever resolved it. Local matches carry
// Rule and Room; remote matches carry Geocode and, when the lookup
// succeeded, Network.
type MatchRecord struct {
	Venue   string            `json:"venue"`
	Rule    string            `json:"rule,omitempty"`
	Room    *Room             `json:"room,omitempty"`
	Geocode *GeocodeCandidate `json:"poiData,omitempty"`
	Network *NetworkFeature   `json:"networkData,omitempty"`
}

// State is the durable reconciliation state.
type State struct {
	Matched   []MatchRecord
	Unmatched []string
}

// Location carries both native and geographic coordinates of a venue.
type Location struct {
	EPSG3414 Point `json:"epsg3414"`
	WGS84    Point `json:"wgs84"`
}

// VenueDetails is the resolved part of a final venue record. Location is
// nil for venues resolved against the room registry only.
type VenueDetails struct {
	RoomCode string    `json:"nusRoomCode"`
	RoomName string    `json:"roomName"`
	Floor    *int      `json:"floor"`
	Location *Location `json:"location,omitempty"`
}

// FinalVenue is the denormalized export row. Details is nil for venues
// that are still unresolved.
type FinalVenue struct {
	Venue   string        `json:"corsRoomCode"`
	Details *VenueDetails `json:"details,omitempty"`
}

// GeocodeRecord is one venue submitted in a batch geocode request. Index is
// the venue's position in its batch and comes back as the candidate's
// ResultID.
type GeocodeRecord struct {
	Index int
	Venue string
}
