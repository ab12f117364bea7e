package sqlinline

const QInsertComment = `--sql 5f89f6bb-f8ce-483c-9d32-6d0d47b29506
insert into comments(id, fundraiser_id, author_id, parent_id, content, anonymous, created_at)
values ($1::uuid, $2::uuid, $3::uuid, $4::uuid, $5::text, $6::boolean, $7::timestamptz);
`

const QSelectCommentByID = `--sql 10c7144f-b7f4-4f31-b876-040366aed06b
select id, fundraiser_id, author_id, parent_id, content, anonymous, created_at
from comments
where id = $1::uuid;
`

// QListCommentsBase is extended with "and ..." clauses by the repository.
const QListCommentsBase = `--sql 9429a113-fe41-4260-bce0-f60315612055
select id, fundraiser_id, author_id, parent_id, content, anonymous, created_at
from comments
where true`

const QUpdateComment = `--sql 0c51fd88-4c8a-46d2-b4b5-292040014c06
update comments
set content = $2::text,
    parent_id = $3::uuid
where id = $1::uuid;
`

// QDeleteCommentSubtree removes a comment together with every transitive
// reply. The recursive walk is the explicit cascade; the schema carries no
// on delete cascade. union (not union all) dedupes visited ids, so the walk
// terminates even if a parent cycle ever reaches the table.
const QDeleteCommentSubtree = `--sql 1e035f52-71d6-4f68-9a3e-6a25ef40b2ce
with recursive subtree as (
    select id from comments where id = $1::uuid
    union
    select c.id from comments c
    join subtree s on c.parent_id = s.id
)
delete from comments
where id in (select id from subtree);
`
