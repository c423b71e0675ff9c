// Package reference resolves clinical normal ranges for test results.
// Resolution walks an ordered fallback chain: the compiled standard
// table, the persistent learned store, in-document extraction via the
// generative capability, and finally a miss that callers turn into a
// generated explanation.
package reference

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

// standardRanges is the compiled knowledge base. Keys are canonical
// lowercase names; gender-qualified sub-entries use a "_male"/"_female"
// suffix and are selected only when the base entry is gender-specific.
var standardRanges = map[string]entity.ReferenceRange{
	// Blood sugar
	"glucose":         {Low: 70, High: 99, Unit: "mg/dL"},
	"fasting_glucose": {Low: 70, High: 99, Unit: "mg/dL"},
	"hba1c":           {Low: 4.0, High: 5.6, Unit: "%"},

	// Complete blood count
	"hemoglobin":        {Low: 12.0, High: 15.5, Unit: "g/dL", GenderSpecific: true},
	"hemoglobin_male":   {Low: 13.5, High: 17.5, Unit: "g/dL"},
	"hemoglobin_female": {Low: 12.0, High: 15.5, Unit: "g/dL"},
	"wbc":               {Low: 4.5, High: 11.0, Unit: "x10³/µL"},
	"rbc":               {Low: 4.2, High: 5.9, Unit: "x10⁶/µL", GenderSpecific: true},
	"rbc_male":          {Low: 4.7, High: 6.1, Unit: "x10⁶/µL"},
	"rbc_female":        {Low: 4.2, High: 5.4, Unit: "x10⁶/µL"},
	"platelets":         {Low: 150, High: 450, Unit: "x10³/µL"},
	"hematocrit":        {Low: 38.3, High: 48.6, Unit: "%", GenderSpecific: true},
	"hematocrit_male":   {Low: 40.7, High: 50.3, Unit: "%"},
	"hematocrit_female": {Low: 36.1, High: 44.3, Unit: "%"},
	"mcv":               {Low: 80, High: 100, Unit: "fL"},
	"mch":               {Low: 27, High: 33, Unit: "pg"},
	"mchc":              {Low: 32, High: 36, Unit: "g/dL"},

	// Electrolytes
	"sodium":    {Low: 136, High: 145, Unit: "mmol/L"},
	"potassium": {Low: 3.5, High: 5.1, Unit: "mmol/L"},
	"calcium":   {Low: 8.6, High: 10.2, Unit: "mg/dL"},

	// Kidney function
	"creatinine":        {Low: 0.7, High: 1.3, Unit: "mg/dL", GenderSpecific: true},
	"creatinine_male":   {Low: 0.7, High: 1.3, Unit: "mg/dL"},
	"creatinine_female": {Low: 0.6, High: 1.1, Unit: "mg/dL"},
	"bun":               {Low: 7, High: 20, Unit: "mg/dL"},
	"egfr":              {Low: 60, High: 120, Unit: "mL/min/1.73m²"},
	"uric_acid":         {Low: 3.5, High: 7.2, Unit: "mg/dL"},

	// Liver function
	"ast":                  {Low: 10, High: 40, Unit: "U/L"},
	"alt":                  {Low: 9, High: 46, Unit: "U/L"},
	"alkaline_phosphatase": {Low: 44, High: 147, Unit: "U/L"},
	"ggt":                  {Low: 0, High: 51, Unit: "U/L"},
	"bilirubin_total":      {Low: 0.2, High: 1.2, Unit: "mg/dL"},
	"albumin":              {Low: 3.5, High: 5.5, Unit: "g/dL"},
	"total_protein":        {Low: 6.0, High: 8.3, Unit: "g/dL"},

	// Lipid panel
	"cholesterol":   {Low: 0, High: 200, Unit: "mg/dL"},
	"ldl":           {Low: 0, High: 100, Unit: "mg/dL"},
	"hdl":           {Low: 40, High: 60, Unit: "mg/dL", GenderSpecific: true},
	"hdl_male":      {Low: 40, High: 60, Unit: "mg/dL"},
	"hdl_female":    {Low: 50, High: 60, Unit: "mg/dL"},
	"triglycerides": {Low: 0, High: 150, Unit: "mg/dL"},
	"vldl":          {Low: 2, High: 30, Unit: "mg/dL"},

	// Thyroid
	"tsh":     {Low: 0.4, High: 4.2, Unit: "mIU/L"},
	"t3":      {Low: 80, High: 200, Unit: "ng/dL"},
	"t4":      {Low: 5.0, High: 12.0, Unit: "µg/dL"},
	"free_t4": {Low: 0.8, High: 1.8, Unit: "ng/dL"},

	// Vitamins and iron
	"vitamin_d":       {Low: 30, High: 100, Unit: "ng/mL"},
	"vitamin_b12":     {Low: 200, High: 900, Unit: "pg/mL"},
	"folate":          {Low: 2.7, High: 17.0, Unit: "ng/mL"},
	"iron":            {Low: 60, High: 170, Unit: "µg/dL"},
	"ferritin":        {Low: 20, High: 250, Unit: "ng/mL", GenderSpecific: true},
	"ferritin_male":   {Low: 24, High: 336, Unit: "ng/mL"},
	"ferritin_female": {Low: 11, High: 307, Unit: "ng/mL"},

	// Inflammation
	"crp": {Low: 0, High: 3.0, Unit: "mg/L"},
	"esr": {Low: 0, High: 20, Unit: "mm/hr"},

	// Imaging: abdominal organs
	"liver size":        {Low: 12, High: 15, Unit: "cm"},
	"right kidney size": {Low: 9, High: 12, Unit: "cm"},
	"left kidney size":  {Low: 9, High: 12, Unit: "cm"},
	"kidney size":       {Low: 9, High: 12, Unit: "cm"},
	"spleen_size":       {Low: 7, High: 12, Unit: "cm"},
	"prostate size":     {Low: 20, High: 30, Unit: "ml"},
	"gallbladder_size":  {Low: 7, High: 10, Unit: "cm"},
	"pancreas_size":     {Low: 12, High: 18, Unit: "cm"},
	"aorta_diameter":    {Low: 2, High: 3, Unit: "cm"},

	// Imaging: calculi. Stones under 5mm usually pass naturally.
	"kidney calculus size": {Low: 0, High: 5, Unit: "mm"},
	"kidney stone size":    {Low: 0, High: 5, Unit: "mm"},
	"calculus size":        {Low: 0, High: 5, Unit: "mm"},
	"stone size":           {Low: 0, High: 5, Unit: "mm"},
	"concretion size":      {Low: 0, High: 5, Unit: "mm"},
	"echogenic foci size":  {Low: 0, High: 5, Unit: "mm"},

	// Imaging: other
	"uterus_size":            {Low: 6, High: 9, Unit: "cm"},
	"ovary_size":             {Low: 2, High: 3.5, Unit: "cm"},
	"thyroid_size":           {Low: 4, High: 6, Unit: "cm"},
	"bladder_wall_thickness": {Low: 3, High: 5, Unit: "mm"},
}

// synonyms maps recognized test-name phrasings to canonical keys.
var synonyms = map[string]string{
	// Glucose
	"fasting blood sugar": "glucose",
	"fbs":                 "glucose",
	"fbg":                 "glucose",
	"blood glucose":       "glucose",
	"blood sugar":         "glucose",

	// Hemoglobin
	"hb":          "hemoglobin",
	"hgb":         "hemoglobin",
	"haemoglobin": "hemoglobin",

	// White cells
	"white blood cell count": "wbc",
	"white blood cells":      "wbc",
	"leucocytes":             "wbc",
	"leukocytes":             "wbc",

	// Red cells
	"red blood cell count": "rbc",
	"red blood cells":      "rbc",
	"erythrocytes":         "rbc",

	// Lipids
	"total cholesterol": "cholesterol",
	"chol":              "cholesterol",
	"hdl cholesterol":   "hdl",
	"hdl-c":             "hdl",
	"ldl cholesterol":   "ldl",
	"ldl-c":             "ldl",

	// Thyroid
	"thyroid stimulating hormone": "tsh",
	"thyrotropin":                 "tsh",

	// HbA1c
	"glycated hemoglobin": "hba1c",
	"a1c":                 "hba1c",

	// Liver
	"sgot":     "ast",
	"sgpt":     "alt",
	"alp":      "alkaline_phosphatase",
	"gamma gt": "ggt",

	// Kidney
	"serum creatinine":    "creatinine",
	"blood urea nitrogen": "bun",

	// Imaging: liver
	"liver":          "liver size",
	"liver length":   "liver size",
	"hepatic size":   "liver size",
	"hepatic length": "liver size",

	// Imaging: kidneys
	"right kidney":        "right kidney size",
	"rt kidney":           "right kidney size",
	"rt kidney size":      "right kidney size",
	"right kidney length": "right kidney size",
	"left kidney":         "left kidney size",
	"lt kidney":           "left kidney size",
	"lt kidney size":      "left kidney size",
	"left kidney length":  "left kidney size",
	"kidney":              "kidney size",
	"renal size":          "kidney size",

	// Imaging: prostate
	"prostate":        "prostate size",
	"prostate gland":  "prostate size",
	"prostate volume": "prostate size",
	"prostate weight": "prostate size",

	// Imaging: other organs
	"spleen":       "spleen_size",
	"splenic size": "spleen_size",
	"gallbladder":  "gallbladder_size",
	"gb":           "gallbladder_size",
	"aorta":        "aorta_diameter",
	"aorta size":   "aorta_diameter",

	// Imaging: calculi
	"calculus":             "calculus size",
	"calculi":              "calculus size",
	"calculi size":         "calculus size",
	"stone":                "stone size",
	"stones":               "stone size",
	"concretion":           "concretion size",
	"concretions":          "concretion size",
	"echogenic foci":       "echogenic foci size",
	"echogenic focus":      "echogenic foci size",
	"kidney stone":         "kidney stone size",
	"renal calculus":       "kidney calculus size",
	"kidney calculus":      "kidney calculus size",
	"right kidney calculus": "kidney calculus size",
	"left kidney calculus":  "kidney calculus size",
	"right kidney stone":    "kidney stone size",
	"left kidney stone":     "kidney stone size",
}

var parenthetical = regexp.MustCompile(`\s*\(.*?\)\s*`)

// CanonicalName maps a raw test-name string to its canonical lookup
// key: lowercased, parentheticals stripped, whitespace collapsed,
// colons dropped, then mapped through the synonym table. Pure and
// total: with no synonym the normalized input is returned unchanged.
func CanonicalName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = parenthetical.ReplaceAllString(n, "")
	n = strings.Join(strings.Fields(n), " ")
	n = strings.TrimSpace(strings.ReplaceAll(n, ":", ""))
	if mapped, ok := synonyms[n]; ok {
		return mapped
	}
	return n
}

// StandardLookup resolves a canonical name against the compiled table,
// trying the name as-is and with spaces replaced by underscores. When
// the entry is gender-specific and the gender is known, the qualified
// sub-entry wins over the unisex one.
func StandardLookup(canonical string, gender constants.Gender) (entity.ReferenceRange, bool) {
	for _, key := range []string{canonical, strings.ReplaceAll(canonical, " ", "_")} {
		r, ok := standardRanges[key]
		if !ok {
			continue
		}
		if r.GenderSpecific && gender.Specific() {
			if gr, gok := standardRanges[key+"_"+string(gender)]; gok {
				return gr, true
			}
		}
		return r, true
	}
	return entity.ReferenceRange{}, false
}
