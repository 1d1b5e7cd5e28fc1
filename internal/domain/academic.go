package domain

type Establishment string

const (
	EstablishmentFS    Establishment = "FS"
	EstablishmentIUT   Establishment = "IUT"
	EstablishmentENSAI Establishment = "ENSAI"
	EstablishmentFSJP  Establishment = "FSJP"
	EstablishmentFSEG  Establishment = "FSEG"
	EstablishmentFLSH  Establishment = "FLSH"
	EstablishmentEMVT  Establishment = "EMVT"
)

func IsValidEstablishment(v string) bool {
	switch Establishment(v) {
	case EstablishmentFS, EstablishmentIUT, EstablishmentENSAI,
		EstablishmentFSJP, EstablishmentFSEG, EstablishmentFLSH, EstablishmentEMVT:
		return true
	}
	return false
}

type Department string

const (
	// Faculté des Sciences (FS)
	DepartmentBiomedicalSciences Department = "BIOMEDICAL_SCIENCES"
	DepartmentRadiology          Department = "RADIOLOGY"
	DepartmentPublicHealth       Department = "PUBLIC_HEALTH"
	DepartmentBiology            Department = "BIOLOGY"
	DepartmentBiochemistry       Department = "BIOCHEMISTRY"
	DepartmentChemistry          Department = "CHEMISTRY"
	DepartmentGeology            Department = "GEOLOGY"
	DepartmentComputerScience    Department = "COMPUTER_SCIENCE"
	DepartmentMathematics        Department = "MATHEMATICS"

	// Institut Universitaire de Technologie (IUT)
	DepartmentFoodEngineering       Department = "FOOD_ENGINEERING"
	DepartmentChemicalEngineering   Department = "CHEMICAL_ENGINEERING"
	DepartmentElectricalEngineering Department = "ELECTRICAL_ENGINEERING"
	DepartmentITEngineering         Department = "IT_ENGINEERING"
	DepartmentMechanicalEngineering Department = "MECHANICAL_ENGINEERING"
	DepartmentIndustrialMaintenance Department = "INDUSTRIAL_MAINTENANCE"

	// ENSAI
	DepartmentAgroIndustry       Department = "AGRO_INDUSTRY"
	DepartmentProcessEngineering Department = "PROCESS_ENGINEERING"
	DepartmentFoodIndustries     Department = "FOOD_INDUSTRIES"

	// FSJP
	DepartmentPrivateLaw             Department = "PRIVATE_LAW"
	DepartmentPublicLaw              Department = "PUBLIC_LAW"
	DepartmentInternationalLaw       Department = "INTERNATIONAL_LAW"
	DepartmentPoliticalScience       Department = "POLITICAL_SCIENCE"
	DepartmentInternationalRelations Department = "INTERNATIONAL_RELATIONS"

	// FSEG
	DepartmentAccounting Department = "ACCOUNTING"
	DepartmentFinance    Department = "FINANCE"
	DepartmentManagement Department = "MANAGEMENT"
	DepartmentMarketing  Department = "MARKETING"
	DepartmentEconomy    Department = "ECONOMY"

	// FLSH
	DepartmentGeography Department = "GEOGRAPHY"
	DepartmentHistory   Department = "HISTORY"
	DepartmentSociology Department = "SOCIOLOGY"
	DepartmentPsychology Department = "PSYCHOLOGY"
	DepartmentLanguages  Department = "LANGUAGES"
	DepartmentUrbanism   Department = "URBANISM"

	// EMVT
	DepartmentVeterinarySciences Department = "VETERINARY_SCIENCES"
	DepartmentAnimalHealth       Department = "ANIMAL_HEALTH"
)

var departmentEstablishments = map[Department]Establishment{
	DepartmentBiomedicalSciences: EstablishmentFS,
	DepartmentRadiology:          EstablishmentFS,
	DepartmentPublicHealth:       EstablishmentFS,
	DepartmentBiology:            EstablishmentFS,
	DepartmentBiochemistry:       EstablishmentFS,
	DepartmentChemistry:          EstablishmentFS,
	DepartmentGeology:            EstablishmentFS,
	DepartmentComputerScience:    EstablishmentFS,
	DepartmentMathematics:        EstablishmentFS,

	DepartmentFoodEngineering:       EstablishmentIUT,
	DepartmentChemicalEngineering:   EstablishmentIUT,
	DepartmentElectricalEngineering: EstablishmentIUT,
	DepartmentITEngineering:         EstablishmentIUT,
	DepartmentMechanicalEngineering: EstablishmentIUT,
	DepartmentIndustrialMaintenance: EstablishmentIUT,

	DepartmentAgroIndustry:       EstablishmentENSAI,
	DepartmentProcessEngineering: EstablishmentENSAI,
	DepartmentFoodIndustries:     EstablishmentENSAI,

	DepartmentPrivateLaw:             EstablishmentFSJP,
	DepartmentPublicLaw:              EstablishmentFSJP,
	DepartmentInternationalLaw:       EstablishmentFSJP,
	DepartmentPoliticalScience:       EstablishmentFSJP,
	DepartmentInternationalRelations: EstablishmentFSJP,

	DepartmentAccounting: EstablishmentFSEG,
	DepartmentFinance:    EstablishmentFSEG,
	DepartmentManagement: EstablishmentFSEG,
	DepartmentMarketing:  EstablishmentFSEG,
	DepartmentEconomy:    EstablishmentFSEG,

	DepartmentGeography:  EstablishmentFLSH,
	DepartmentHistory:    EstablishmentFLSH,
	DepartmentSociology:  EstablishmentFLSH,
	DepartmentPsychology: EstablishmentFLSH,
	DepartmentLanguages:  EstablishmentFLSH,
	DepartmentUrbanism:   EstablishmentFLSH,

	DepartmentVeterinarySciences: EstablishmentEMVT,
	DepartmentAnimalHealth:       EstablishmentEMVT,
}

// Establishment resolves the school a department belongs to.
func (d Department) Establishment() Establishment { return departmentEstablishments[d] }

func IsValidDepartment(v string) bool {
	_, ok := departmentEstablishments[Department(v)]
	return ok
}
