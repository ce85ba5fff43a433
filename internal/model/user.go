package model

// Username — типизированный ключ сравнения пользователей. Два снимка профиля
// считаются одним пользователем, если совпадают username (остальные поля могут
// расходиться, например устаревший кеш сессии и свежая строка из БД).
type Username string

// User — строка таблицы users. PasswordHash и Grade наружу не отдаются:
// handlers формируют ответ через ToPublic.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Student      bool   `json:"student"`
	Grade        string `json:"-"` // класс ученика, например "11A"; у преподавателей пусто
}

// UserPublic — публичный вид профиля (ровно те поля, что уходят в API-ответ).
type UserPublic struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Student   bool   `json:"student"`
}

func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Student:   u.Student,
	}
}

// Key возвращает ключ сравнения снимка.
func (u UserPublic) Key() Username {
	return Username(u.Username)
}
