package repositories

import (
	"errors"
	"fmt"

	"postview/app/models"
)

// SeedPosts are loaded by Seed. They follow the shape of the public
// jsonplaceholder dataset so a local store can stand in for it.
var SeedPosts = []models.Post{
	{
		ID:     1,
		UserID: 1,
		Title:  "sunt aut facere repellat provident occaecati excepturi optio reprehenderit",
		Body:   "quia et suscipit\nsuscipit recusandae consequuntur expedita et cum\nreprehenderit molestiae ut ut quas totam\nnostrum rerum est autem sunt rem eveniet architecto",
	},
	{
		ID:     2,
		UserID: 1,
		Title:  "qui est esse",
		Body:   "est rerum tempore vitae\nsequi sint nihil reprehenderit dolor beatae ea dolores neque\nfugiat blanditiis voluptate porro vel nihil molestiae ut reiciendis\nqui aperiam non debitis possimus qui neque nisi nulla",
	},
}

// SeedComments are loaded by Seed, keyed to SeedPosts.
var SeedComments = []models.Comment{
	{ID: 1, PostID: 1, Name: "id labore ex et quam laborum", Email: "Eliseo@gardner.biz", Body: "laudantium enim quasi est quidem magnam voluptate ipsam eos"},
	{ID: 2, PostID: 1, Name: "quo vero reiciendis velit similique earum", Email: "Jayne_Kuhic@sydney.com", Body: "est natus enim nihil est dolore omnis voluptatem numquam"},
	{ID: 3, PostID: 1, Name: "odio adipisci rerum aut animi", Email: "Nikita@garfield.biz", Body: "quia molestiae reprehenderit quasi aspernatur"},
	{ID: 6, PostID: 2, Name: "et fugit eligendi deleniti quidem qui sint nihil autem", Email: "Presley.Mueller@myrl.com", Body: "doloribus at sed quis culpa deserunt consectetur qui praesentium"},
}

// Seed loads the sample dataset. Posts that already exist are left as
// they are, so seeding twice is harmless.
func Seed(posts PostRepository, comments CommentRepository) (int, error) {
	created := 0
	for i := range SeedPosts {
		post := SeedPosts[i]
		if _, err := posts.GetByID(post.ID); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return created, err
		}
		if err := posts.Create(&post); err != nil {
			return created, fmt.Errorf("seed post %d: %w", post.ID, err)
		}
		created++

		for j := range SeedComments {
			comment := SeedComments[j]
			if comment.PostID != post.ID {
				continue
			}
			if err := comments.Create(&comment); err != nil {
				return created, fmt.Errorf("seed comment %d: %w", comment.ID, err)
			}
		}
	}
	return created, nil
}
