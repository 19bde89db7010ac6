package models

// FriendCategory is a code for the kind of companionship a user is looking for.
type FriendCategory string

const (
	CategoryTravel   FriendCategory = "TRAVEL"
	CategoryDining   FriendCategory = "DINING"
	CategoryErrands  FriendCategory = "ERRANDS"
	CategoryDoctor   FriendCategory = "DOCTOR"
	CategorySports   FriendCategory = "SPORTS"
	CategoryShopping FriendCategory = "SHOPPING"
)

// FriendCategoryOption pairs a category code with its display label.
type FriendCategoryOption struct {
	Code  FriendCategory
	Label string
}

// FriendCategoryOptions is the fixed, ordered list of categories.
var FriendCategoryOptions = []FriendCategoryOption{
	{Code: CategoryTravel, Label: "หาเพื่อนไปเที่ยว"},
	{Code: CategoryDining, Label: "หาเพื่อนไปทานข้าว"},
	{Code: CategoryErrands, Label: "หาเพื่อนไปทำธุระ"},
	{Code: CategoryDoctor, Label: "หาเพื่อนไปหาหมอ"},
	{Code: CategorySports, Label: "หาเพื่อนเล่นกีฬา"},
	{Code: CategoryShopping, Label: "หาเพื่อนไปซื้อของ"},
}

// IsKnown reports whether c is one of FriendCategoryOptions.
func (c FriendCategory) IsKnown() bool {
	for _, o := range FriendCategoryOptions {
		if o.Code == c {
			return true
		}
	}
	return false
}

// UnknownCategories returns the codes in selected that are not in
// FriendCategoryOptions, in their original order.
func UnknownCategories(selected []FriendCategory) []FriendCategory {
	var out []FriendCategory
	for _, c := range selected {
		if !c.IsKnown() {
			out = append(out, c)
		}
	}
	return out
}

// CategoriesToForm turns the server's array form into a map holding every
// known code, true when selected. Unknown codes are dropped.
func CategoriesToForm(selected []FriendCategory) map[FriendCategory]bool {
	set := make(map[FriendCategory]struct{}, len(selected))
	for _, c := range selected {
		set[c] = struct{}{}
	}

	form := make(map[FriendCategory]bool, len(FriendCategoryOptions))
	for _, o := range FriendCategoryOptions {
		_, ok := set[o.Code]
		form[o.Code] = ok
	}
	return form
}

// CategoriesFromForm is the inverse of CategoriesToForm: the codes mapped to
// true, in FriendCategoryOptions order. The result is never nil so it
// encodes as [] rather than null.
func CategoriesFromForm(form map[FriendCategory]bool) []FriendCategory {
	out := make([]FriendCategory, 0, len(form))
	for _, o := range FriendCategoryOptions {
		if form[o.Code] {
			out = append(out, o.Code)
		}
	}
	return out
}
