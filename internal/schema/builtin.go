package schema

import "github.com/abhisek/jalur/internal/record"

// ProfileEnglish is the fallback when no profile recognizes a header.
const ProfileEnglish = "english"

// Builtin returns the built-in profiles in detection priority order.
func Builtin() []*Profile {
	return []*Profile{school(), posyandu(), english()}
}

func school() *Profile {
	return &Profile{
		Name:        "school",
		Description: "Dinas pendidikan school register export",
		Columns: []Mapping{
			{"nama", record.FieldName},
			{"tgl_lahir", record.FieldBirthDate},
			{"tgl_masuk_sd", record.FieldSchoolEntryDate},
			{"kelas_terakhir", record.FieldGrade},
			{"status", record.FieldStatus},
			{"tunggakan", record.FieldArrears},
			{"pendapatan_keluarga", record.FieldFamilyIncome},
			{"alasan_putus", record.FieldDropoutReason},
			{"sekolah_asal_tipe", record.FieldOriginSchoolType},
			{"alamat_kecamatan", record.FieldDistrict},
		},
	}
}

// posyandu exports carry no status column; status is inferred from the
// reason text.
func posyandu() *Profile {
	return &Profile{
		Name:        "posyandu",
		Description: "Village health post (posyandu) child survey",
		Columns: []Mapping{
			{"nama_anak", record.FieldName},
			{"tanggal_lahir", record.FieldBirthDate},
			{"kelas_terakhir", record.FieldGrade},
			{"kelas", record.FieldGrade},
			{"alasan_tidak_sekolah", record.FieldDropoutReason},
			{"keterangan", record.FieldDropoutReason},
			{"tunggakan_biaya", record.FieldArrears},
			{"kecamatan", record.FieldDistrict},
			{"desa", record.FieldDistrict},
		},
	}
}

// english accepts the canonical field names directly alongside common
// English spellings.
func english() *Profile {
	p := &Profile{
		Name:        ProfileEnglish,
		Description: "English headers and canonical field names",
	}
	for _, f := range record.AllFields() {
		p.Columns = append(p.Columns, Mapping{f, f})
	}
	p.Columns = append(p.Columns,
		Mapping{"full_name", record.FieldName},
		Mapping{"date_of_birth", record.FieldBirthDate},
		Mapping{"dob", record.FieldBirthDate},
		Mapping{"entry_date", record.FieldSchoolEntryDate},
		Mapping{"grade_level", record.FieldGrade},
		Mapping{"last_grade", record.FieldGrade},
		Mapping{"enrollment_status", record.FieldStatus},
		Mapping{"arrears_amount", record.FieldArrears},
		Mapping{"outstanding_fees", record.FieldArrears},
		Mapping{"household_income", record.FieldFamilyIncome},
		Mapping{"reason", record.FieldDropoutReason},
		Mapping{"school_type", record.FieldOriginSchoolType},
	)
	return p
}
