package model

type UserType string

const (
	UserTypeIndividual UserType = "individual"
	UserTypeBusiness   UserType = "business"
)

func (t UserType) Valid() bool {
	return t == UserTypeIndividual || t == UserTypeBusiness
}

type BusinessType string

const (
	BusinessTypeStartup    BusinessType = "startup"
	BusinessTypeEnterprise BusinessType = "enterprise"
)
