package backend

// Wire shapes of the five LBU backend services. Field names are fixed
// external contracts.

type JWTToken struct {
	JWTToken string `json:"jwtToken"`
	UserID   string `json:"userId"`
}

type AuthUser struct {
	UserID    string `json:"userId,omitempty"`
	UserName  string `json:"userName"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type Message struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Course struct {
	IDHref         string  `json:"idHref"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Fees           float64 `json:"fees"`
	DurationInDays int     `json:"durationInDays"`
	Instructor     string  `json:"instructor"`
}

type CourseList struct {
	Courses []Course `json:"courses"`
}

type Student struct {
	ID               string   `json:"id"`
	Address          string   `json:"address,omitempty"`
	EmergencyContact string   `json:"emergencyContact,omitempty"`
	DateOfBirth      string   `json:"dateOfBirth,omitempty"`
	PhoneContact     string   `json:"phoneContact,omitempty"`
	AuthUserHref     string   `json:"authUserHref"`
	CreatedTimestamp string   `json:"createdTimestamp"`
	UpdatedTimestamp string   `json:"updatedTimestamp"`
	CourseHrefs      []string `json:"courseHrefs"`
}

type Invoice struct {
	ID        string  `json:"id"`
	Reference string  `json:"reference"`
	DueDate   string  `json:"dueDate"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
}

type InvoiceAccount struct {
	ID           string    `json:"id"`
	AuthUserHref string    `json:"authUserHref"`
	InvoiceList  []Invoice `json:"invoiceList"`
}

type Book struct {
	ID              string `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	YearOfPublished string `json:"yearOfPublished"`
	Copies          int    `json:"copies"`
	IsBorrowed      bool   `json:"isBorrowed"`
}

type BookList struct {
	Books []Book `json:"books"`
}
