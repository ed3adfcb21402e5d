package exapi

// Listing endpoints, relative to the base URL.
const (
	EndpointLocations    = "locationinfo/locationinfoRest"
	EndpointBestFoods    = "restinfo/restBestfoodList"
	EndpointBrands       = "restinfo/restBrandList"
	EndpointConveniences = "restinfo/restConvList"
)

// RawLocation is a row of the location listing.
type RawLocation struct {
	UnitName        Text `json:"unitName"`
	UnitCode        Text `json:"unitCode"`
	RouteName       Text `json:"routeName"`
	RouteNo         Text `json:"routeNo"`
	XValue          Text `json:"xValue"`
	YValue          Text `json:"yValue"`
	StdRestCd       Text `json:"stdRestCd"`
	ServiceAreaCode Text `json:"serviceAreaCode"`
}

// RawBestFood is a row of the menu listing.
type RawBestFood struct {
	StdRestCd    Text `json:"stdRestCd"`
	StdRestNm    Text `json:"stdRestNm"`
	RouteCd      Text `json:"routeCd"`
	RouteNm      Text `json:"routeNm"`
	SvarAddr     Text `json:"svarAddr"`
	FoodNm       Text `json:"foodNm"`
	FoodCost     Text `json:"foodCost"`
	Etc          Text `json:"etc"`
	RecommendYN  Text `json:"recommendyn"`
	BestFoodYN   Text `json:"bestfoodyn"`
	PremiumYN    Text `json:"premiumyn"`
	SeasonMenu   Text `json:"seasonMenu"`
	FoodMaterial Text `json:"foodMaterial"`
	RestCd       Text `json:"restCd"`
	Seq          Text `json:"seq"`
}

// RawBrand is a row of the brand listing.
type RawBrand struct {
	StdRestCd Text `json:"stdRestCd"`
	StdRestNm Text `json:"stdRestNm"`
	RouteCd   Text `json:"routeCd"`
	RouteNm   Text `json:"routeNm"`
	SvarAddr  Text `json:"svarAddr"`
	BrdCode   Text `json:"brdCode"`
	BrdName   Text `json:"brdName"`
	BrdDesc   Text `json:"brdDesc"`
	Stime     Text `json:"stime"`
	Etime     Text `json:"etime"`
}

// RawConvenience is a row of the convenience facility listing.
type RawConvenience struct {
	StdRestCd Text `json:"stdRestCd"`
	StdRestNm Text `json:"stdRestNm"`
	RouteCd   Text `json:"routeCd"`
	RouteNm   Text `json:"routeNm"`
	SvarAddr  Text `json:"svarAddr"`
	PsCode    Text `json:"psCode"`
	PsName    Text `json:"psName"`
	PsDesc    Text `json:"psDesc"`
	Stime     Text `json:"stime"`
	Etime     Text `json:"etime"`
}
