package domain

// QuestionType is the normalized bin class of a question. It drives entity filtering
// during answer extraction and the source priority of the answer merge.
type QuestionType string

const (
	HowMany      QuestionType = "how_many"
	HowMuch      QuestionType = "how_much"
	What         QuestionType = "what"
	When         QuestionType = "when"
	WhenAndWhere QuestionType = "when_and_where"
	Where        QuestionType = "where"
	ShowMe       QuestionType = "show_me"
	YesNo        QuestionType = "yes/no"
	Who          QuestionType = "who"

	// UnknownQuestionType fills a response whose question_type is absent.
	UnknownQuestionType QuestionType = "UNK"
)

var QuestionTypes = []QuestionType{HowMany, What, When, WhenAndWhere, Where, ShowMe, YesNo, Who, HowMuch}

// Entity labels produced by the NLP capability.
const (
	EntityOrdinal   = "ORDINAL"
	EntityCardinal  = "CARDINAL"
	EntityQuantity  = "QUANTITY"
	EntityMoney     = "MONEY"
	EntityPercent   = "PERCENT"
	EntityDate      = "DATE"
	EntityTime      = "TIME"
	EntityFacility  = "FACILITY"
	EntityOrg       = "ORG"
	EntityGPE       = "GPE"
	EntityLoc       = "LOC"
	EntityPerson    = "PERSON"
	EntityEvent     = "EVENT"
	EntityWorkOfArt = "WORK_OF_ART"
)

var (
	howManyEntities = []string{EntityOrdinal, EntityCardinal, EntityQuantity, EntityMoney, EntityPercent}
	whenEntities    = []string{EntityCardinal, EntityOrdinal, EntityDate, EntityTime}
	whereEntities   = []string{EntityFacility, EntityOrg, EntityGPE, EntityLoc}
	whoEntities     = []string{EntityPerson, EntityOrg, EntityEvent, EntityWorkOfArt}
)

// EntityLabels returns the entity labels relevant for the question type.
// A nil result means every label is accepted.
func (t QuestionType) EntityLabels() []string {
	switch t {
	case HowMany:
		return howManyEntities
	case When:
		return whenEntities
	case Where:
		return whereEntities
	case WhenAndWhere:
		labels := make([]string, 0, len(whenEntities)+len(whereEntities))
		labels = append(labels, whenEntities...)
		return append(labels, whereEntities...)
	case Who:
		return whoEntities
	default:
		return nil
	}
}

// AcceptsEntity reports whether an entity label passes the question type filter.
func (t QuestionType) AcceptsEntity(label string) bool {
	labels := t.EntityLabels()
	if labels == nil {
		return true
	}
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// IsDate reports whether answers of this type are dates.
func (t QuestionType) IsDate() bool {
	return t == When || t == WhenAndWhere
}

// TextFirst reports whether the text pipeline outranks the multimedia pipeline
// when answers of both are merged.
func (t QuestionType) TextFirst() bool {
	return t == What || t == YesNo || t == Who
}

func (t QuestionType) String() string {
	return string(t)
}
