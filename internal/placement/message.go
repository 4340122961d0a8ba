package placement

// MessageID identifies a canonical recommendation template.
type MessageID string

const (
	MsgInsufficientData       MessageID = "insufficient-data"
	MsgStatusUnclear          MessageID = "status-unclear"
	MsgStayRegular            MessageID = "stay-regular"
	MsgPackageAOverage        MessageID = "package-a-overage"
	MsgContinueSMP            MessageID = "continue-smp"
	MsgPackageBOverage        MessageID = "package-b-overage"
	MsgContinueSMA            MessageID = "continue-sma"
	MsgGraduationInconsistent MessageID = "graduation-inconsistent"
	MsgNearestSchoolSD        MessageID = "nearest-school-sd"
	MsgSettleArrearsSMP       MessageID = "settle-arrears-smp"
	MsgPackageAFree           MessageID = "package-a-free"
	MsgPackageBFree           MessageID = "package-b-free"
	MsgPackageC               MessageID = "package-c"
	MsgRegisterNewDomicile    MessageID = "register-new-domicile"
	MsgCounselingPackageA     MessageID = "counseling-package-a"
	MsgNearestSchool          MessageID = "nearest-school"
	MsgInclusiveSchool        MessageID = "inclusive-school"
	MsgPackageAAge13          MessageID = "package-a-age13"
	MsgPackageAFarOver        MessageID = "package-a-far-over"
	MsgPackageB               MessageID = "package-b"
	MsgUndetermined           MessageID = "undetermined"
)

// NeedsReview reports whether id flags a record for manual follow-up rather
// than a placement.
func (id MessageID) NeedsReview() bool {
	switch id {
	case MsgInsufficientData, MsgStatusUnclear, MsgGraduationInconsistent, MsgUndetermined:
		return true
	}
	return false
}

// Recommendation is the placement chosen for one record.
type Recommendation struct {
	ID   MessageID `json:"id"`
	Text string    `json:"text"`
}

// Locales supported by the built-in catalog.
const (
	LocaleID = "id"
	LocaleEN = "en"
)

// Template holds the localized texts of one message.
type Template struct {
	ID string `yaml:"id" json:"id"`
	EN string `yaml:"en" json:"en"`
}

// Catalog renders message IDs as text in one locale.
type Catalog struct {
	Locale    string
	Templates map[MessageID]Template
}

// NewCatalog returns the built-in catalog for locale. Unknown locales fall
// back to Indonesian.
func NewCatalog(locale string) *Catalog {
	tpl := make(map[MessageID]Template, len(builtinTemplates))
	for k, v := range builtinTemplates {
		tpl[k] = v
	}
	if locale != LocaleEN {
		locale = LocaleID
	}
	return &Catalog{Locale: locale, Templates: tpl}
}

// Add registers or replaces a template.
func (c *Catalog) Add(id MessageID, t Template) {
	c.Templates[id] = t
}

// Has reports whether id has a template.
func (c *Catalog) Has(id MessageID) bool {
	_, ok := c.Templates[id]
	return ok
}

// Text renders id. A missing template renders as the ID itself so that an
// output row is never blank.
func (c *Catalog) Text(id MessageID) string {
	t, ok := c.Templates[id]
	if !ok {
		return string(id)
	}
	if c.Locale == LocaleEN && t.EN != "" {
		return t.EN
	}
	if t.ID != "" {
		return t.ID
	}
	return t.EN
}

var builtinTemplates = map[MessageID]Template{
	MsgInsufficientData: {
		ID: "Data belum lengkap, mohon lengkapi tanggal lahir & kelas terakhir",
		EN: "Insufficient data: complete the birth date and last grade",
	},
	MsgStatusUnclear: {
		ID: "Status siswa tidak jelas, periksa kembali data",
		EN: "Status unclear: re-verify the student's data",
	},
	MsgStayRegular: {
		ID: "Tetap di Sekolah Reguler",
		EN: "Remain in regular school",
	},
	MsgPackageAOverage: {
		ID: "Direkomendasikan Paket A (usia melebihi batas wajar untuk kelasnya)",
		EN: "Package A recommended (age exceeds the normal range for the grade)",
	},
	MsgContinueSMP: {
		ID: "Lanjut ke SMP Reguler",
		EN: "Continue to regular junior secondary school (SMP)",
	},
	MsgPackageBOverage: {
		ID: "Direkomendasikan Paket B (setara SMP, karena usia di atas standar)",
		EN: "Package B recommended (junior-secondary equivalency, age above standard)",
	},
	MsgContinueSMA: {
		ID: "Lanjut ke SMA/SMK Reguler",
		EN: "Continue to regular senior secondary school (SMA/SMK)",
	},
	MsgGraduationInconsistent: {
		ID: "Data lulus tidak konsisten, periksa kelas terakhir",
		EN: "Inconsistent graduation data: review the last grade manually",
	},
	MsgNearestSchoolSD: {
		ID: "Rekomendasi Sekolah Terdekat (masih cukup usia untuk lanjut SD)",
		EN: "Nearest regular school (still young enough to continue primary school)",
	},
	MsgSettleArrearsSMP: {
		ID: "Selesaikan tunggakan terlebih dahulu, lalu lanjut SMP Reguler",
		EN: "Settle outstanding arrears first, then continue to regular SMP",
	},
	MsgPackageAFree: {
		ID: "Direkomendasikan Paket A (gratis, setara SD)",
		EN: "Package A recommended (free, primary equivalency)",
	},
	MsgPackageBFree: {
		ID: "Direkomendasikan Paket B (gratis, setara SMP)",
		EN: "Package B recommended (free, junior-secondary equivalency)",
	},
	MsgPackageC: {
		ID: "Direkomendasikan Paket C (setara SMA)",
		EN: "Package C recommended (senior-secondary equivalency)",
	},
	MsgRegisterNewDomicile: {
		ID: "Daftar ke Sekolah Terdekat sesuai domisili baru",
		EN: "Register at the nearest school for the new residence",
	},
	MsgCounselingPackageA: {
		ID: "Program Bimbingan Konseling & Kejar Paket A",
		EN: "Counseling programme and Package A track",
	},
	MsgNearestSchool: {
		ID: "Direkomendasikan Sekolah Terdekat",
		EN: "Nearest school recommended",
	},
	MsgInclusiveSchool: {
		ID: "Sekolah Inklusi / Program Pendidikan Khusus",
		EN: "Inclusive school / special-needs education programme",
	},
	MsgPackageAAge13: {
		ID: "Direkomendasikan Paket A (karena usia 13 tahun ke atas)",
		EN: "Package A recommended (aged 13 or over)",
	},
	MsgPackageAFarOver: {
		ID: "Direkomendasikan Paket A (usia jauh di atas standar SD)",
		EN: "Package A recommended (age far above the primary-school standard)",
	},
	MsgPackageB: {
		ID: "Direkomendasikan Paket B (setara SMP)",
		EN: "Package B recommended (junior-secondary equivalency)",
	},
	MsgUndetermined: {
		ID: "Jalur pendidikan tidak terdefinisi, perlu cek data siswa",
		EN: "Undetermined track: manual data review needed",
	},
}

// BuiltinMessageIDs returns every built-in message ID.
func BuiltinMessageIDs() []MessageID {
	out := make([]MessageID, 0, len(builtinTemplates))
	for id := range builtinTemplates {
		out = append(out, id)
	}
	return out
}
