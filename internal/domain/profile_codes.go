package domain

// Skill is the freelancer's main category.
type Skill string

const (
	SkillWebDesigner      Skill = "web_designer"
	SkillFrontendEngineer Skill = "frontend_engineer"
	SkillBackendEngineer  Skill = "backend_engineer"
	SkillDesigner         Skill = "designer"
	SkillPhotographer     Skill = "photographer"
	SkillIllustrator      Skill = "illustrator"
	SkillWriter           Skill = "writer"
	SkillBlogger          Skill = "blogger"
)

var skillLabels = map[Skill]string{
	SkillWebDesigner:      "Web Designer",
	SkillFrontendEngineer: "Programmer (Frontend)",
	SkillBackendEngineer:  "Programmer (Backend)",
	SkillDesigner:         "Designer",
	SkillPhotographer:     "Photographer",
	SkillIllustrator:      "Illustrator",
	SkillWriter:           "Writer",
	SkillBlogger:          "Blogger",
}

// Valid reports whether s is a known skill code.
func (s Skill) Valid() bool {
	_, ok := skillLabels[s]
	return ok
}

// Label returns the display name, or the raw code when unknown.
func (s Skill) Label() string {
	if label, ok := skillLabels[s]; ok {
		return label
	}
	return string(s)
}

// Area is the region a freelancer works in: "1" is online, "2".."48" are prefectures.
type Area string

var areaLabels = map[Area]string{
	"1": "Online", "2": "Hokkaido", "3": "Aomori", "4": "Iwate", "5": "Miyagi",
	"6": "Akita", "7": "Yamagata", "8": "Fukushima", "9": "Ibaraki", "10": "Tochigi",
	"11": "Gunma", "12": "Saitama", "13": "Chiba", "14": "Tokyo", "15": "Kanagawa",
	"16": "Niigata", "17": "Toyama", "18": "Ishikawa", "19": "Fukui", "20": "Yamanashi",
	"21": "Nagano", "22": "Gifu", "23": "Shizuoka", "24": "Aichi", "25": "Mie",
	"26": "Shiga", "27": "Kyoto", "28": "Osaka", "29": "Hyogo", "30": "Nara",
	"31": "Wakayama", "32": "Tottori", "33": "Shimane", "34": "Okayama", "35": "Hiroshima",
	"36": "Yamaguchi", "37": "Tokushima", "38": "Kagawa", "39": "Ehime", "40": "Kochi",
	"41": "Fukuoka", "42": "Saga", "43": "Nagasaki", "44": "Kumamoto", "45": "Oita",
	"46": "Miyazaki", "47": "Kagoshima", "48": "Okinawa",
}

// Valid reports whether a is a known area code.
func (a Area) Valid() bool {
	_, ok := areaLabels[a]
	return ok
}

// Label returns the display name, or the raw code when unknown.
func (a Area) Label() string {
	if label, ok := areaLabels[a]; ok {
		return label
	}
	return string(a)
}

// RequestFee is the fee range a freelancer asks for.
type RequestFee string

var requestFeeLabels = map[RequestFee]string{
	"1": "Negotiable",
	"2": "Free",
	"3": "Up to 10,000 JPY",
	"4": "10,000 JPY and up",
	"5": "50,000 JPY and up",
	"6": "100,000 JPY and up",
	"7": "500,000 JPY and up",
}

// Valid reports whether f is a known fee range code.
func (f RequestFee) Valid() bool {
	_, ok := requestFeeLabels[f]
	return ok
}

// Label returns the display name, or the raw code when unknown.
func (f RequestFee) Label() string {
	if label, ok := requestFeeLabels[f]; ok {
		return label
	}
	return string(f)
}
