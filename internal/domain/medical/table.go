package medical

// Abbreviation maps a clinical shorthand token to its plain-language
// expansion.
type Abbreviation struct {
	Abbreviation string   `json:"abbreviation"`
	Expansion    string   `json:"expansion"`
	Category     string   `json:"category"`
	Examples     []string `json:"examples,omitempty"`
}

// Drug is one static reference record. Matching treats the canonical name,
// generic name, and every brand alias as equivalent handles.
type Drug struct {
	Name         string   `json:"name"`
	GenericName  string   `json:"genericName"`
	BrandNames   []string `json:"brandNames,omitempty"`
	Category     string   `json:"category"`
	CommonDosages []string `json:"commonDosages,omitempty"`
	Forms        []string `json:"forms,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	SideEffects  []string `json:"sideEffects,omitempty"`
	Interactions []string `json:"interactions,omitempty"`
}

// defaultAbbreviations is the built-in shorthand table. Order matters only
// for equal-length tokens during expansion; see ExpandAbbreviations.
var defaultAbbreviations = []Abbreviation{
	{Abbreviation: "bid", Expansion: "twice a day", Category: "frequency", Examples: []string{"1 tablet bid"}},
	{Abbreviation: "tid", Expansion: "three times a day", Category: "frequency", Examples: []string{"5ml tid"}},
	{Abbreviation: "qid", Expansion: "four times a day", Category: "frequency"},
	{Abbreviation: "qd", Expansion: "once a day", Category: "frequency"},
	{Abbreviation: "qod", Expansion: "every other day", Category: "frequency"},
	{Abbreviation: "qhs", Expansion: "every night at bedtime", Category: "frequency"},
	{Abbreviation: "q4h", Expansion: "every 4 hours", Category: "frequency"},
	{Abbreviation: "q6h", Expansion: "every 6 hours", Category: "frequency"},
	{Abbreviation: "q8h", Expansion: "every 8 hours", Category: "frequency"},
	{Abbreviation: "prn", Expansion: "as needed", Category: "frequency", Examples: []string{"prn for pain"}},
	{Abbreviation: "stat", Expansion: "immediately", Category: "urgency"},
	{Abbreviation: "po", Expansion: "by mouth", Category: "route", Examples: []string{"500mg po"}},
	{Abbreviation: "sl", Expansion: "under the tongue", Category: "route"},
	{Abbreviation: "im", Expansion: "into a muscle", Category: "route"},
	{Abbreviation: "iv", Expansion: "into a vein", Category: "route"},
	{Abbreviation: "sc", Expansion: "under the skin", Category: "route"},
	{Abbreviation: "ac", Expansion: "before meals", Category: "timing"},
	{Abbreviation: "pc", Expansion: "after meals", Category: "timing"},
	{Abbreviation: "hs", Expansion: "at bedtime", Category: "timing"},
	{Abbreviation: "tab", Expansion: "tablet", Category: "form"},
	{Abbreviation: "cap", Expansion: "capsule", Category: "form"},
	{Abbreviation: "gtt", Expansion: "drop", Category: "form"},
	{Abbreviation: "ung", Expansion: "ointment", Category: "form"},
	{Abbreviation: "od", Expansion: "right eye", Category: "site"},
	{Abbreviation: "os", Expansion: "left eye", Category: "site"},
	{Abbreviation: "ou", Expansion: "both eyes", Category: "site"},
	{Abbreviation: "npo", Expansion: "nothing by mouth", Category: "instruction"},
	{Abbreviation: "c/o", Expansion: "complains of", Category: "clinical"},
	{Abbreviation: "rx", Expansion: "prescription", Category: "clinical"},
}

// defaultDrugs is the built-in drug reference table.
var defaultDrugs = []Drug{
	{
		Name: "Paracetamol", GenericName: "acetaminophen",
		BrandNames: []string{"Tylenol", "Calpol", "Crocin", "Dolo"},
		Category:   "analgesic/antipyretic",
		CommonDosages: []string{"325mg", "500mg", "650mg"},
		Forms:        []string{"tablet", "syrup", "suppository"},
		Instructions: []string{"take with or without food", "do not exceed 4g in 24 hours"},
		Warnings:     []string{"avoid alcohol", "overdose can cause severe liver damage"},
		SideEffects:  []string{"nausea", "rash"},
		Interactions: []string{"warfarin", "isoniazid"},
	},
	{
		Name: "Ibuprofen", GenericName: "ibuprofen",
		BrandNames: []string{"Advil", "Motrin", "Brufen", "Nurofen"},
		Category:   "NSAID",
		CommonDosages: []string{"200mg", "400mg", "600mg"},
		Forms:        []string{"tablet", "capsule", "suspension", "gel"},
		Instructions: []string{"take with food or milk"},
		Warnings:     []string{"may cause stomach bleeding", "avoid in late pregnancy"},
		SideEffects:  []string{"heartburn", "dizziness", "stomach upset"},
		Interactions: []string{"aspirin", "warfarin", "lisinopril"},
	},
	{
		Name: "Amoxicillin", GenericName: "amoxicillin",
		BrandNames: []string{"Amoxil", "Mox", "Trimox"},
		Category:   "antibiotic",
		CommonDosages: []string{"250mg", "500mg", "875mg"},
		Forms:        []string{"capsule", "suspension", "chewable tablet"},
		Instructions: []string{"complete the full course even if you feel better"},
		Warnings:     []string{"tell your doctor about penicillin allergies"},
		SideEffects:  []string{"diarrhea", "nausea", "rash"},
		Interactions: []string{"methotrexate", "oral contraceptives"},
	},
	{
		Name: "Aspirin", GenericName: "acetylsalicylic acid",
		BrandNames: []string{"Disprin", "Ecosprin", "Bayer"},
		Category:   "antiplatelet/NSAID",
		CommonDosages: []string{"75mg", "81mg", "325mg"},
		Forms:        []string{"tablet", "enteric-coated tablet"},
		Instructions: []string{"take with food"},
		Warnings:     []string{"not for children with viral illness", "stop before surgery if advised"},
		SideEffects:  []string{"stomach irritation", "easy bruising"},
		Interactions: []string{"warfarin", "ibuprofen", "methotrexate"},
	},
	{
		Name: "Metformin", GenericName: "metformin hydrochloride",
		BrandNames: []string{"Glucophage", "Glycomet"},
		Category:   "antidiabetic",
		CommonDosages: []string{"500mg", "850mg", "1000mg"},
		Forms:        []string{"tablet", "extended-release tablet"},
		Instructions: []string{"take with meals to reduce stomach upset"},
		Warnings:     []string{"hold before contrast imaging if advised"},
		SideEffects:  []string{"diarrhea", "metallic taste", "nausea"},
		Interactions: []string{"alcohol", "contrast dyes"},
	},
	{
		Name: "Omeprazole", GenericName: "omeprazole",
		BrandNames: []string{"Prilosec", "Omez", "Losec"},
		Category:   "proton pump inhibitor",
		CommonDosages: []string{"20mg", "40mg"},
		Forms:        []string{"capsule", "delayed-release tablet"},
		Instructions: []string{"take 30-60 minutes before the first meal of the day"},
		Warnings:     []string{"long-term use may lower magnesium"},
		SideEffects:  []string{"headache", "abdominal pain"},
		Interactions: []string{"clopidogrel", "diazepam"},
	},
	{
		Name: "Cetirizine", GenericName: "cetirizine hydrochloride",
		BrandNames: []string{"Zyrtec", "Alerid", "Cetzine"},
		Category:   "antihistamine",
		CommonDosages: []string{"5mg", "10mg"},
		Forms:        []string{"tablet", "syrup"},
		Instructions: []string{"may be taken with or without food"},
		Warnings:     []string{"may cause drowsiness"},
		SideEffects:  []string{"drowsiness", "dry mouth"},
		Interactions: []string{"alcohol", "CNS depressants"},
	},
	{
		Name: "Azithromycin", GenericName: "azithromycin",
		BrandNames: []string{"Zithromax", "Azithral", "Z-Pak"},
		Category:   "antibiotic",
		CommonDosages: []string{"250mg", "500mg"},
		Forms:        []string{"tablet", "suspension"},
		Instructions: []string{"complete the full course"},
		Warnings:     []string{"can affect heart rhythm in susceptible patients"},
		SideEffects:  []string{"diarrhea", "abdominal pain"},
		Interactions: []string{"antacids", "warfarin"},
	},
	{
		Name: "Atorvastatin", GenericName: "atorvastatin calcium",
		BrandNames: []string{"Lipitor", "Atorva"},
		Category:   "statin",
		CommonDosages: []string{"10mg", "20mg", "40mg", "80mg"},
		Forms:        []string{"tablet"},
		Instructions: []string{"usually taken in the evening"},
		Warnings:     []string{"report unexplained muscle pain"},
		SideEffects:  []string{"muscle aches", "headache"},
		Interactions: []string{"grapefruit juice", "clarithromycin"},
	},
	{
		Name: "Amlodipine", GenericName: "amlodipine besylate",
		BrandNames: []string{"Norvasc", "Amlong", "Amlip"},
		Category:   "calcium channel blocker",
		CommonDosages: []string{"2.5mg", "5mg", "10mg"},
		Forms:        []string{"tablet"},
		Instructions: []string{"take at the same time each day"},
		Warnings:     []string{"do not stop abruptly without medical advice"},
		SideEffects:  []string{"ankle swelling", "flushing"},
		Interactions: []string{"simvastatin", "grapefruit juice"},
	},
}
